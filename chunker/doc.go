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


// Package chunker splits document text into overlapping fixed-size windows.
//
// Chunking is pure and synchronous. Windows overlap so that statements cut at
// a window boundary remain intact in the neighboring window, which matters
// for retrieval quality over clinical prose. The overlap must be smaller than
// the window size; configurations that cannot advance are rejected up front.
package chunker
