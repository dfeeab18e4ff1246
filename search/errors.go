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


package search

import "errors"

var (
	// ErrClientRequired is returned when a search client is not provided.
	ErrClientRequired = errors.New("search client required")

	// ErrDetailRepositoryRequired is returned when a detail repository is not provided.
	ErrDetailRepositoryRequired = errors.New("detail repository required")

	// ErrNoSearchTerms indicates that no non-blank search term was supplied.
	ErrNoSearchTerms = errors.New("at least one non-blank search term required")

	// ErrInvalidLimit indicates a non-positive result limit.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrUnknownCategorySet indicates an unrecognized category set identifier.
	ErrUnknownCategorySet = errors.New("unknown category set")

	// ErrSearchFailed indicates the search collaborator round trip failed.
	ErrSearchFailed = errors.New("search collaborator failed")
)
