//go:build js && wasm
// +build js,wasm

package encryption

import (
	"encoding/hex"
	"fmt"
	"strings"
	"syscall/js"
)

func errorObject(err error) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("error", err.Error())
	obj.Set("kind", ErrorKind(err))
	return obj
}

func stringArgs(args []js.Value, n int) ([]string, error) {
	if len(args) < n {
		return nil, fmt.Errorf("insufficient args: need %d, got %d", n, len(args))
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if args[i].Type() != js.TypeString {
			return nil, fmt.Errorf("argument %d must be a string, got %s", i, args[i].Type().String())
		}
		out[i] = args[i].String()
	}
	return out, nil
}

// stepCollector gathers steps as plain JS-compatible values
type stepCollector struct {
	steps []interface{}
}

func (c *stepCollector) OnStep(step Step) {
	c.steps = append(c.steps, map[string]interface{}{
		"phase": string(step.Phase),
		"round": step.Round,
		"kind":  string(step.Kind),
		"state": step.State.Hex(),
	})
}

func registerWasm() {
	// WasmAES.Encrypt(plaintext, key) -> {ciphertext, steps}
	encrypt := js.FuncOf(func(this js.Value, args []js.Value) (result any) {
		defer func() {
			if r := recover(); r != nil {
				result = errorObject(fmt.Errorf("panic: %v", r))
			}
		}()

		s, err := stringArgs(args, 2)
		if err != nil {
			return errorObject(err)
		}

		steps := &stepCollector{}
		ct, err := NewAES128(WithObserver(steps)).EncryptBlock([]byte(s[0]), []byte(s[1]))
		if err != nil {
			return errorObject(err)
		}

		obj := js.Global().Get("Object").New()
		obj.Set("ciphertext", strings.ToUpper(hex.EncodeToString(ct)))
		obj.Set("steps", js.ValueOf(steps.steps))
		return obj
	})

	// WasmAES.Decrypt(ciphertextHex, key) -> {plaintext, plaintextHex, steps}
	decrypt := js.FuncOf(func(this js.Value, args []js.Value) (result any) {
		defer func() {
			if r := recover(); r != nil {
				result = errorObject(fmt.Errorf("panic: %v", r))
			}
		}()

		s, err := stringArgs(args, 2)
		if err != nil {
			return errorObject(err)
		}

		steps := &stepCollector{}
		pt, err := NewAES128(WithObserver(steps)).DecryptBlockHex(s[0], []byte(s[1]))
		if err != nil {
			return errorObject(err)
		}

		obj := js.Global().Get("Object").New()
		obj.Set("plaintext", string(pt))
		obj.Set("plaintextHex", strings.ToUpper(hex.EncodeToString(pt)))
		obj.Set("steps", js.ValueOf(steps.steps))
		return obj
	})

	// WasmAES.KeySchedule(key) -> {roundKeys}
	keySchedule := js.FuncOf(func(this js.Value, args []js.Value) any {
		s, err := stringArgs(args, 1)
		if err != nil {
			return errorObject(err)
		}

		ks, err := ExpandKey([]byte(s[0]))
		if err != nil {
			return errorObject(err)
		}

		keys := ks.RoundKeys()
		roundKeys := make([]interface{}, len(keys))
		for i := range keys {
			roundKeys[i] = keys[i].Hex()
		}

		obj := js.Global().Get("Object").New()
		obj.Set("roundKeys", js.ValueOf(roundKeys))
		return obj
	})

	wasmObj := js.Global().Get("WasmAES")
	if wasmObj.Type() == js.TypeUndefined {
		wasmObj = js.Global().Get("Object").New()
		js.Global().Set("WasmAES", wasmObj)
	}
	wasmObj.Set("Encrypt", encrypt)
	wasmObj.Set("Decrypt", decrypt)
	wasmObj.Set("KeySchedule", keySchedule)
}

// RegisterWasmFunctions registers all WASM functions with JavaScript
func RegisterWasmFunctions() {
	registerWasm()
}
