// Package apidoc extracts structured documentation from a router's registered
// handlers. Endpoints, their parameters, and every data type reachable from
// their inputs and outputs are described once, at startup, and cached as an
// immutable snapshot grouped by API version.
//
// The framework supplies handler metadata through the Registry interface:
//
//	type Registry interface {
//	    HandlerMethods() ([]HandlerMethod, error)
//	}
//
// Types are inspected through the provider-neutral Type interface. The
// reflection-backed ReflectProvider reads struct fields and documentation
// from a Docs side table, `doc`/`help` struct tags, and the Documenter
// interface:
//
//	docs := apidoc.NewDocs()
//	apidoc.DocumentType[User](docs, "A registered user")
//	apidoc.DocumentField[User](docs, "email", "Primary contact address", "Unique per account")
//
// Build the snapshot once and hand it to a presentation layer:
//
//	in, err := apidoc.New("1.4.0", r, []string{"/v1", "/v2"})
//	if err != nil {
//	    return err // refuse to start with incomplete documentation
//	}
//	in.KnownAPI().WriteJSON(os.Stdout)
package apidoc
