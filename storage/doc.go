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


// Package storage provides the detail-store abstraction layer.
//
// It defines the DetailRepository interface that decouples the unified
// search pipeline from the storage implementation, so backends (BadgerDB,
// in-memory, mocks) are interchangeable. Constructors in backend packages
// return the interface, not the concrete type.
//
// All repository implementations must be thread-safe; the orchestrator may
// issue detail lookups from several goroutines at once. All methods accept
// context.Context for cancellation.
package storage
