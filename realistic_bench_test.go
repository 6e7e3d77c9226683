package memkit_test

import (
	"runtime"
	"strconv"
	"testing"

	"github.com/pavanmanishd/memkit"
	"github.com/pavanmanishd/memkit/array"
	"github.com/pavanmanishd/memkit/hashmap"
	"github.com/pavanmanishd/memkit/str"
)

type record struct {
	ID   int64
	Data [56]byte
}

var words = func() []string {
	w := make([]string, 256)
	for i := range w {
		w[i] = "word-" + strconv.Itoa(i%64)
	}
	return w
}()

// BenchmarkRequestScope models a request handler that builds temporary
// containers and throws them all away at the end.
func BenchmarkRequestScope(b *testing.B) {
	b.Run("Records/Arena", func(b *testing.B) {
		a := memkit.NewArena(64 * 1024)
		defer a.Release()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var recs array.Array[record]
			recs.Init(a, 0)
			for j := 0; j < 50; j++ {
				recs.Add(record{ID: int64(j)})
			}
			a.Reset()
		}
	})

	b.Run("Records/Builtin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var recs []record
			for j := 0; j < 50; j++ {
				recs = append(recs, record{ID: int64(j)})
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Word counting with a table rebuilt per request
	b.Run("WordCount/Arena", func(b *testing.B) {
		a := memkit.NewArena(64 * 1024)
		defer a.Release()
		m := a.Mark()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			counts := hashmap.New[str.View, int](a)
			for _, w := range words {
				p, _ := counts.Add(str.V(w))
				*p++
			}
			a.SetMark(m)
		}
	})

	b.Run("WordCount/Builtin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			counts := make(map[string]int)
			for _, w := range words {
				counts[w]++
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	b.Run("Format/Arena", func(b *testing.B) {
		a := memkit.NewArena(16 * 1024)
		defer a.Release()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			sb := str.NewBuilder(a, 0)
			for j := 0; j < 20; j++ {
				sb.AddString(words[j])
				sb.AddByte(',')
			}
			_ = sb.Str()
			a.Reset()
		}
	})

	b.Run("Format/Builtin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var buf []byte
			for j := 0; j < 20; j++ {
				buf = append(buf, words[j]...)
				buf = append(buf, ',')
			}
			_ = string(buf)
		}
	})
}

// BenchmarkScratchBuffers compares short-lived buffers from a rewound arena
// with fresh heap slices.
func BenchmarkScratchBuffers(b *testing.B) {
	b.Run("Arena", func(b *testing.B) {
		a := memkit.NewArena(1024 * 1024)
		defer a.Release()
		runtime.GC()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			m := a.Mark()
			for j := 0; j < 10; j++ {
				buf := memkit.MakeSlice[byte](a, 1024+512*j)
				buf[0] = byte(j)
			}
			a.SetMark(m)
		}
	})

	b.Run("Builtin", func(b *testing.B) {
		runtime.GC()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 10; j++ {
				buf := make([]byte, 1024+512*j)
				buf[0] = byte(j)
			}
		}
	})
}
