package script

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/Shopify/go-lua"
)

const maxDepth = 16

// toGo converts the Lua value at index into a plain Go value.
// Tables become []any when they are sequences and map[string]any otherwise.
// A table reached again while it is still being converted becomes nil; a table
// shared by several fields is converted once.
func toGo(l *lua.State, index int) any {
	c := &converter{
		l:      l,
		onPath: make(map[any]struct{}),
		done:   make(map[any]any),
	}
	return c.value(index, 0)
}

type converter struct {
	l      *lua.State
	onPath map[any]struct{}
	done   map[any]any
}

func (c *converter) value(index, depth int) any {
	l := c.l
	if l.IsNoneOrNil(index) {
		return nil
	}
	switch l.TypeOf(index) {
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
		return n
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s
	case lua.TypeTable:
		if depth >= maxDepth {
			return nil
		}
		ptr := l.ToValue(index)
		if _, cycle := c.onPath[ptr]; cycle {
			return nil
		}
		if v, ok := c.done[ptr]; ok {
			return v
		}
		c.onPath[ptr] = struct{}{}
		v := c.table(l.AbsIndex(index), depth)
		delete(c.onPath, ptr)
		c.done[ptr] = v
		return v
	default:
		return lua.TypeNameOf(l, index)
	}
}

func (c *converter) table(t, depth int) any {
	l := c.l
	fields := make(map[string]any)
	seq := make(map[int]any)

	l.PushNil()
	for l.Next(t) {
		v := c.value(-1, depth+1)
		switch l.TypeOf(-2) {
		case lua.TypeNumber:
			n, _ := l.ToNumber(-2)
			if n == math.Trunc(n) && n >= 1 {
				seq[int(n)] = v
			} else {
				fields[strconv.FormatFloat(n, 'f', -1, 64)] = v
			}
		case lua.TypeString:
			k, _ := l.ToString(-2)
			fields[k] = v
		}
		l.Pop(1)
	}

	if len(fields) == 0 && len(seq) > 0 && isSequence(seq) {
		out := make([]any, len(seq))
		for i := range out {
			out[i] = seq[i+1]
		}
		return out
	}
	for i, v := range seq {
		fields[strconv.Itoa(i)] = v
	}
	return fields
}

func isSequence(seq map[int]any) bool {
	keys := make([]int, 0, len(seq))
	for k := range seq {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for i, k := range keys {
		if k != i+1 {
			return false
		}
	}
	return true
}

// pushGo pushes a Go value onto the Lua stack. Unsupported values become strings.
func pushGo(l *lua.State, v any, depth int) {
	if depth >= maxDepth {
		l.PushNil()
		return
	}
	switch x := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(x)
	case string:
		l.PushString(x)
	case int:
		l.PushInteger(x)
	case int64:
		l.PushNumber(float64(x))
	case float64:
		l.PushNumber(x)
	case []any:
		l.NewTable()
		for i, item := range x {
			pushGo(l, item, depth+1)
			l.RawSetInt(-2, i+1)
		}
	case []string:
		l.NewTable()
		for i, item := range x {
			l.PushString(item)
			l.RawSetInt(-2, i+1)
		}
	case map[string]any:
		l.NewTable()
		for k, item := range x {
			pushGo(l, item, depth+1)
			l.SetField(-2, k)
		}
	case map[string]string:
		l.NewTable()
		for k, item := range x {
			l.PushString(item)
			l.SetField(-2, k)
		}
	case fmt.Stringer:
		l.PushString(x.String())
	default:
		l.PushString(fmt.Sprintf("%v", x))
	}
}
