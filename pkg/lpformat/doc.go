// Package lpformat encodes a [model.Model] for external LP solvers.
//
// Two text formats are built in:
//
//   - LP: the CPLEX LP format read by CPLEX, Gurobi, GLPK, HiGHS, CBC and SCIP
//   - MPS: free-form MPS, column oriented
//
// Encoders are looked up by writer and format with [Lookup]. The "native"
// writer is always available. Building with the glpk tag adds a "glpk" writer
// that hands the model to GLPK (via github.com/lukpank/go-glpk) and lets it
// produce the file; that requires libglpk and cgo:
//
//	go get github.com/lukpank/go-glpk/glpk
//	go build -tags glpk ./cmd/mmcf
//
// # Names
//
// Variable and row names are sanitized the way common LP modelers do it:
// the characters "-+[] ->/" become "_". Model-level names containing
// spaces are sanitized the same way.
//
// # Empty Expressions
//
// LP format cannot express a row or an objective without terms. Such
// expressions are written as "0 __dummy" and the __dummy column is fixed to 0
// in the Bounds section. MPS needs no placeholder.
package lpformat
