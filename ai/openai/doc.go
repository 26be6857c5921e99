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


// Package openai provides ai.Provider implementations backed by
// OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// Completion calls are made with temperature zero and JSON mode: clinical
// synthesis has to be reproducible, and the synthesis layer expects a strict
// machine-readable payload. Embedding calls strip newlines before embedding,
// which measurably improves similarity quality for prose extracted from PDFs.
package openai
