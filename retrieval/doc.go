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


// Package retrieval ranks the chunks of a single document against a query.
//
// The query is embedded through the degrade-to-zero policy, every chunk of
// the document is scored with cosine similarity in one linear pass, and the
// topK highest-scoring chunks come back in descending score order. Equal
// scores keep document order, so results are deterministic for a given
// store state. A degraded query embedding produces all-zero scores rather
// than an error; the Result flags it so callers can tell the difference
// between "nothing relevant" and "ranking was blind".
package retrieval
