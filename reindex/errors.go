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


package reindex

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a retry budget below one.
	ErrInvalidMaxAttempts = errors.New("max attempts must be at least 1")

	// ErrIndexerRequired indicates a nil indexer was passed to the rebuilder.
	ErrIndexerRequired = errors.New("indexer is required")

	// ErrRepositoryRequired indicates a nil detail repository.
	ErrRepositoryRequired = errors.New("detail repository is required")
)
