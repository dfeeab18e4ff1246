// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/poiesic/identisearch/core"
)

// MarshalPartyDetail serializes a PartyDetail to bytes.
func MarshalPartyDetail(detail *core.PartyDetail) []byte {
	buf := make([]byte, core.PartyDetailMUS.Size(*detail))
	core.PartyDetailMUS.Marshal(*detail, buf)
	return buf
}

// UnmarshalPartyDetail deserializes a PartyDetail from bytes.
func UnmarshalPartyDetail(data []byte) (*core.PartyDetail, error) {
	detail, _, err := core.PartyDetailMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &detail, nil
}
