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


// Package ingestion stores documents as retrievable chunk sets.
//
// Each document is windowed into overlapping chunks, every chunk is embedded
// in one index-aligned batch, and the chunk set is committed atomically. A
// provider outage during embedding does not fail ingestion: chunks get zero
// vectors and the result is flagged degraded. Batch ingestion fans out over
// an ants worker pool; single-document ingestion is synchronous so callers
// get the report ID back immediately.
package ingestion
