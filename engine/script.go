package engine

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// scriptError is a JavaScript exception thrown by a custom script.
type scriptError struct {
	details *proto.RuntimeExceptionDetails
}

func (e *scriptError) Error() string {
	if ex := e.details.Exception; ex != nil && ex.Description != "" {
		return ex.Description
	}
	return e.details.Text
}

// runScript evaluates script in the page's main world and discards the
// result. Both plain expressions ("document.title = 'x'") and function
// sources ("() => { ... }") are accepted; a function is invoked with no
// arguments. Promises are awaited.
func runScript(p *rod.Page, script string) error {
	res, err := proto.RuntimeEvaluate{
		Expression:   script,
		AwaitPromise: true,
		UserGesture:  true,
	}.Call(p)
	if err != nil {
		return err
	}
	if res.ExceptionDetails != nil {
		return &scriptError{details: res.ExceptionDetails}
	}

	if res.Result == nil || res.Result.Type != proto.RuntimeRemoteObjectTypeFunction {
		return nil
	}

	call, err := proto.RuntimeCallFunctionOn{
		FunctionDeclaration: "function() { return this() }",
		ObjectID:            res.Result.ObjectID,
		AwaitPromise:        true,
		UserGesture:         true,
	}.Call(p)
	if err != nil {
		return fmt.Errorf("invoke script function: %w", err)
	}
	if call.ExceptionDetails != nil {
		return &scriptError{details: call.ExceptionDetails}
	}
	return nil
}
