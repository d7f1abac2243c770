// Package form implements the form state engine: field values, per-field
// validation errors, touched flags, and the submission lifecycle.
//
// State transitions go through Reduce, a pure function over a closed set of
// Action variants. Engine owns one State, serialises dispatches, and runs the
// asynchronous submit flow:
//
//	engine, _ := form.New(def,
//		form.WithSchema(schema),
//		form.WithSubmit(func(ctx context.Context, values map[string]any) error {
//			return client.Post(ctx, values)
//		}),
//	)
//	_ = engine.SetFieldValue("email", model.Text("ada@example.com"))
//	if err := engine.Submit(ctx); err != nil {
//		state := engine.State() // errors live on the fields or in SubmitError
//	}
package form
