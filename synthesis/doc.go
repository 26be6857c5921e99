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


// Package synthesis turns retrieved document chunks into structured clinical
// payloads: a full-document Analysis or a grounded question Answer.
//
// The orchestrator assembles a delimited prompt from the top-ranked chunks,
// calls the completion service at temperature zero under a strict JSON
// schema, and validates the response. A failed call, a malformed payload, or
// a schema violation never propagates as an error: the caller receives a
// deterministic fallback payload with a flag set, because fabricated clinical
// content is worse than an honest "analysis unavailable". Malformed JSON gets
// one repair attempt (fence stripping plus key-quote fixes) before the
// fallback applies.
package synthesis
