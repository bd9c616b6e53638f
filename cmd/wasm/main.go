//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
)

var conv *converter.Converter

type updateResponse struct {
	Error string            `json:"error,omitempty"`
	State *colormodel.Color `json:"state,omitempty"`
}

// update is called from JavaScript with the edited field's kind and raw text.
// It returns the new state, or the unchanged state with an error.
func update(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return encode(updateResponse{Error: "missing arguments"})
	}

	kind, err := converter.ParseKind(args[0].String())
	if err != nil {
		cur := conv.Current()
		return encode(updateResponse{Error: err.Error(), State: &cur})
	}

	c, err := conv.ApplyText(kind, args[1].String())
	if err != nil {
		msg := err.Error()
		if errors.Is(err, colormodel.ErrInvalidFormat) {
			msg = colormodel.ErrInvalidFormat.Error()
		}
		return encode(updateResponse{Error: msg, State: &c})
	}
	return encode(updateResponse{State: &c})
}

func state(this js.Value, args []js.Value) interface{} {
	cur := conv.Current()
	return encode(updateResponse{State: &cur})
}

func encode(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(data)
}

func main() {
	var err error
	conv, err = converter.New(converter.Config{}, nil)
	if err != nil {
		panic(err)
	}

	c := make(chan struct{})

	js.Global().Set("colorsyncUpdate", js.FuncOf(update))
	js.Global().Set("colorsyncState", js.FuncOf(state))

	fmt.Println("colorsync WASM module loaded")
	<-c
}
