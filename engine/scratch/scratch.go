// Package scratch is a frame-scoped byte arena for building transient strings
// (overlay labels, debug readouts) without per-frame heap garbage.
// Single-threaded usage: Init once at startup, Reset once per frame.
package scratch

import "strconv"

var buf []byte

// Init sets up the global scratch buffer. Call once at startup.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1024
	}
	buf = make([]byte, 0, capacity)
}

// Reset clears the buffer length without freeing memory. Call once per frame.
func Reset() { buf = buf[:0] }

// Cap returns the current capacity, for tuning.
func Cap() int { return cap(buf) }

// Len returns the current length.
func Len() int { return len(buf) }

// Mark returns a bookmark to later slice the output.
func Mark() int { return len(buf) }

// StringFrom copies the bytes produced since mark into a string.
func StringFrom(mark int) string { return string(buf[mark:]) }

// ----- Chainable builder over the global buffer -----

type Builder struct{}

// F returns a builder bound to the global buffer.
func F() Builder { return Builder{} }

func (Builder) S(s string) Builder {
	buf = append(buf, s...)
	return Builder{}
}

func (Builder) C(c byte) Builder {
	buf = append(buf, c)
	return Builder{}
}

// I appends a base-10 integer.
func (Builder) I(v int) Builder {
	buf = strconv.AppendInt(buf, int64(v), 10)
	return Builder{}
}

// F64 appends a float with the given precision.
func (Builder) F64(v float64, prec int) Builder {
	buf = strconv.AppendFloat(buf, v, 'f', prec, 64)
	return Builder{}
}

// Sprintf is a minimal formatter over the scratch buffer supporting
// %s %d %f (with .prec) and %%. Unknown verbs are written literally.
func Sprintf(format string, args ...any) string {
	var ai int
	mark := len(buf)
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			buf = append(buf, ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			buf = append(buf, '%')
			i++
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			start := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			prec = 0
			for _, d := range format[start:i] {
				prec = prec*10 + int(d-'0')
			}
		}
		if i >= len(format) || ai >= len(args) {
			break
		}
		switch format[i] {
		case 's':
			if s, ok := args[ai].(string); ok {
				buf = append(buf, s...)
			}
		case 'd':
			buf = strconv.AppendInt(buf, toInt64(args[ai]), 10)
		case 'f':
			p := 3
			if prec >= 0 {
				p = prec
			}
			buf = strconv.AppendFloat(buf, toFloat64(args[ai]), 'f', p, 64)
		default:
			buf = append(buf, '%', format[i])
		}
		ai++
	}
	return string(buf[mark:])
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint64:
		return int64(x)
	case uint:
		return int64(x)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
