// Package recval validates JSON documents against a named, possibly
// self-referential catalog of record schemas.
//
// It provides:
//
// - Catalog construction from record definitions, JSON or YAML files
// - Iterative, worklist-driven validation (no call-stack recursion when
// unfolding nested record references)
// - A stable error model via Issues (JSON Pointer, code, message, severity)
// - A Document source abstraction over in-memory values, bytes, readers and
// file paths
//
// Design policy:
// - Keep only public APIs in the root package; put the traversal engine under
// internal/engine.
// - Place HTTP adapters under middleware/ and the CLI under cmd/recval.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	cat, err := recval.LoadCatalog("schema.json")
//	v := recval.New(cat)
//	res, err := v.Validate(ctx, "demo.lead", recval.FromBytes(data))
//	if !res.Valid {
//	    for _, iss := range res.Issues {
//	        fmt.Println(iss.Code, iss.Path, iss.Message)
//	    }
//	}
package recval
