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


// Package storage defines the repository interfaces and serialization
// helpers for persisting documents and their chunks.
//
// Documents carry the original text plus metadata; chunks carry the windowed
// text and its embedding vector. Chunks are written once per document as an
// atomic batch and are never updated afterward, which keeps chunk indices
// stable for retrieval citations.
//
// Values are serialized with the MUS binary format (mus-go). Concrete
// backends live in subpackages; see storage/badger.
package storage
