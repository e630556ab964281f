package logger

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindInt
	kindInt64
	kindFloat
	kindBool
	kindError
	kindAny
)

// Field is one structured key/value attached to a log line.
type Field struct {
	Key  string
	kind fieldKind
	str  string
	num  int64
	flt  float64
	val  interface{}
}

func (f Field) addTo(e *zerolog.Event) {
	switch f.kind {
	case kindString:
		e.Str(f.Key, f.str)
	case kindInt:
		e.Int(f.Key, int(f.num))
	case kindInt64:
		e.Int64(f.Key, f.num)
	case kindFloat:
		e.Float64(f.Key, f.flt)
	case kindBool:
		e.Bool(f.Key, f.num != 0)
	case kindError:
		if err, _ := f.val.(error); err != nil {
			e.Err(err)
		}
	default:
		e.Interface(f.Key, f.val)
	}
}

// plain is the JSON-friendly value used for child loggers and the collector.
func (f Field) plain() interface{} {
	switch f.kind {
	case kindString:
		return f.str
	case kindInt:
		return int(f.num)
	case kindInt64:
		return f.num
	case kindFloat:
		return f.flt
	case kindBool:
		return f.num != 0
	case kindError:
		if err, _ := f.val.(error); err != nil {
			return err.Error()
		}
		return nil
	}
	return f.val
}

func String(key, value string) Field {
	return Field{Key: key, kind: kindString, str: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, kind: kindInt, num: int64(value)}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, kind: kindInt64, num: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, kind: kindFloat, flt: value}
}

func Bool(key string, value bool) Field {
	f := Field{Key: key, kind: kindBool}
	if value {
		f.num = 1
	}
	return f
}

// Error logs err under "error"; a nil error adds nothing.
func Error(err error) Field {
	return Field{Key: zerolog.ErrorFieldName, kind: kindError, val: err}
}

func Any(key string, value interface{}) Field {
	return Field{Key: key, kind: kindAny, val: value}
}

// Duration logs whole milliseconds.
func Duration(key string, value time.Duration) Field {
	return Int64(key, value.Milliseconds())
}

func Strings(key string, value []string) Field {
	return String(key, strings.Join(value, ", "))
}
