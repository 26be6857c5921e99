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

import (
	"time"

	com "github.com/mus-format/common-go"
	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/varint"
)

// Hand-composed MUS serializers for the domain types. The type surface is
// small enough that composing the varint primitives directly beats carrying
// a code generator.
var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}
	// ChunkMUS serializes Chunk values.
	ChunkMUS = chunkMUS{}
	// DocumentMUS serializes Document values.
	DocumentMUS = documentMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// strMUS serializes strings as a varint length followed by raw bytes.
type strMUS struct{}

func (strMUS) Marshal(s string, bs []byte) int {
	n := varint.Int.Marshal(len(s), bs)
	return n + copy(bs[n:], s)
}

func (strMUS) Unmarshal(bs []byte) (string, int, error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return "", n, err
	}
	if length < 0 {
		return "", n, com.ErrNegativeLength
	}
	if len(bs) < n+length {
		return "", n, mus.ErrTooSmallByteSlice
	}
	return string(bs[n : n+length]), n + length, nil
}

func (strMUS) Size(s string) int {
	return varint.Int.Size(len(s)) + len(s)
}

// vecMUS serializes float32 vectors as a varint length followed by elements.
type vecMUS struct{}

func (vecMUS) Marshal(v []float32, bs []byte) int {
	n := varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += varint.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (vecMUS) Unmarshal(bs []byte) ([]float32, int, error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, com.ErrNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	v := make([]float32, length)
	for i := range v {
		f, fn, err := varint.Float32.Unmarshal(bs[n:])
		if err != nil {
			return nil, n, err
		}
		v[i] = f
		n += fn
	}
	return v, n, nil
}

func (vecMUS) Size(v []float32) int {
	size := varint.Int.Size(len(v))
	for _, f := range v {
		size += varint.Float32.Size(f)
	}
	return size
}

// timeMUS serializes timestamps as Unix microseconds.
type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) int {
	n := IDMUS.Marshal(c.DocumentId, bs)
	n += varint.Int.Marshal(c.Index, bs[n:])
	n += strMUS{}.Marshal(c.Text, bs[n:])
	n += vecMUS{}.Marshal(c.Vector, bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	var fn int
	if c.DocumentId, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if c.Index, fn, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + fn, err
	}
	n += fn
	if c.Text, fn, err = (strMUS{}).Unmarshal(bs[n:]); err != nil {
		return c, n + fn, err
	}
	n += fn
	if c.Vector, fn, err = (vecMUS{}).Unmarshal(bs[n:]); err != nil {
		return c, n + fn, err
	}
	n += fn
	return c, n, nil
}

func (chunkMUS) Size(c Chunk) int {
	return IDMUS.Size(c.DocumentId) +
		varint.Int.Size(c.Index) +
		strMUS{}.Size(c.Text) +
		vecMUS{}.Size(c.Vector)
}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) int {
	n := IDMUS.Marshal(d.Id, bs)
	n += strMUS{}.Marshal(d.ReportID, bs[n:])
	n += strMUS{}.Marshal(d.Filename, bs[n:])
	n += strMUS{}.Marshal(d.Contents, bs[n:])
	n += varint.Int.Marshal(d.ChunkCount, bs[n:])
	n += timeMUS{}.Marshal(d.InsertedAt, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	var fn int
	if d.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if d.ReportID, fn, err = (strMUS{}).Unmarshal(bs[n:]); err != nil {
		return d, n + fn, err
	}
	n += fn
	if d.Filename, fn, err = (strMUS{}).Unmarshal(bs[n:]); err != nil {
		return d, n + fn, err
	}
	n += fn
	if d.Contents, fn, err = (strMUS{}).Unmarshal(bs[n:]); err != nil {
		return d, n + fn, err
	}
	n += fn
	if d.ChunkCount, fn, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return d, n + fn, err
	}
	n += fn
	if d.InsertedAt, fn, err = (timeMUS{}).Unmarshal(bs[n:]); err != nil {
		return d, n + fn, err
	}
	n += fn
	return d, n, nil
}

func (documentMUS) Size(d Document) int {
	return IDMUS.Size(d.Id) +
		strMUS{}.Size(d.ReportID) +
		strMUS{}.Size(d.Filename) +
		strMUS{}.Size(d.Contents) +
		varint.Int.Size(d.ChunkCount) +
		timeMUS{}.Size(d.InsertedAt)
}
