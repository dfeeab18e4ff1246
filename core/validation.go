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

import "fmt"

// ValidatePartyDetail validates a PartyDetail according to domain rules.
//
// Validation rules:
//   - EntityKey must not be empty
//
// NOT validated (the detail store is authoritative for its own content):
//   - Name, tax id, and address fields may be empty for sparse records
//   - EntityType and CustomerType flags are free-form source values
func ValidatePartyDetail(detail *PartyDetail) error {
	if detail == nil {
		return fmt.Errorf("%w: detail is nil", ErrInvalidPartyDetail)
	}

	if detail.EntityKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPartyDetail, ErrEmptyEntityKey)
	}

	return nil
}

// ValidateCategory validates that a Category has a known value.
func ValidateCategory(category Category) error {
	if !category.IsValid() && category != CategoryUnknown {
		return fmt.Errorf("%w: value %d", ErrInvalidCategory, category)
	}
	return nil
}
