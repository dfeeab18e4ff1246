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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidPartyDetail indicates a PartyDetail failed validation.
	ErrInvalidPartyDetail = errors.New("invalid party detail")

	// ErrEmptyEntityKey indicates a required entity key is empty.
	ErrEmptyEntityKey = errors.New("entity key cannot be empty")

	// ErrInvalidCategory indicates an out-of-range Category value.
	ErrInvalidCategory = errors.New("invalid category")
)
