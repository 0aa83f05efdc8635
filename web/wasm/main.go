//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-lti/internal/webdemo"
)

var (
	engine = webdemo.NewEngine()
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// setSystem(description) takes a plain object shaped like the YAML
	// system files and returns null or an error message.
	api.Set("setSystem", export(func(args []js.Value) any {
		if len(args) < 1 {
			return "missing system description"
		}
		doc := js.Global().Get("JSON").Call("stringify", args[0]).String()
		if err := engine.SetSystem(doc); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	// bode(omega?, discrete?) returns {omega, mag, phase} or an error message.
	api.Set("bode", export(func(args []js.Value) any {
		var omega []float64
		if len(args) > 0 && !args[0].IsUndefined() && !args[0].IsNull() {
			omega = toFloats(args[0])
		}
		curve, err := engine.Bode(omega, boolArg(args, 1))
		if err != nil {
			return err.Error()
		}
		return map[string]any{
			"omega": toFloat64Array(curve.Omega),
			"mag":   toFloat64Array(curve.MagDB),
			"phase": toFloat64Array(curve.Phase),
		}
	}))

	// response(type?, tEnd?) returns {time, output} or an error message.
	api.Set("response", export(func(args []js.Value) any {
		rt := ""
		if len(args) > 0 && args[0].Type() == js.TypeString {
			rt = args[0].String()
		}
		tEnd := 0.0
		if len(args) > 1 && args[1].Type() == js.TypeNumber {
			tEnd = args[1].Float()
		}
		times, values, err := engine.Response(rt, tEnd)
		if err != nil {
			return err.Error()
		}
		return map[string]any{
			"time":   toFloat64Array(times),
			"output": toFloat64Array(values),
		}
	}))

	// roots(discrete?) returns {poles, zeroes} as arrays of [re, im].
	api.Set("roots", export(func(args []js.Value) any {
		poles, zeroes, err := engine.Roots(boolArg(args, 0))
		if err != nil {
			return err.Error()
		}
		return map[string]any{
			"poles":  toPairs(poles),
			"zeroes": toPairs(zeroes),
		}
	}))

	api.Set("text", export(func(args []js.Value) any {
		s, err := engine.Text(boolArg(args, 0))
		if err != nil {
			return err.Error()
		}
		return s
	}))

	// process(Float32Array) filters audio-rate blocks in place through the
	// discrete system.
	api.Set("process", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		arr := args[0]
		n := arr.Length()
		buf := make([]float64, n)
		for i := 0; i < n; i++ {
			buf[i] = arr.Index(i).Float()
		}
		engine.Process(buf)
		for i := 0; i < n; i++ {
			arr.SetIndex(i, buf[i])
		}
		return js.Null()
	}))

	api.Set("resetStream", export(func(args []js.Value) any {
		engine.ResetStream()
		return js.Null()
	}))

	js.Global().Set("AlgoLTI", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

func boolArg(args []js.Value, i int) bool {
	return len(args) > i && args[i].Truthy()
}

func toFloats(v js.Value) []float64 {
	out := make([]float64, v.Length())
	for i := range out {
		out[i] = v.Index(i).Float()
	}
	return out
}

func toFloat64Array(data []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}

func toPairs(roots []complex128) []any {
	out := make([]any, len(roots))
	for i, r := range roots {
		out[i] = []any{real(r), imag(r)}
	}
	return out
}
