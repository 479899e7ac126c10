package shader

import "go.uber.org/zap"

// ProgramBuilderOption is a functional option for configuring a Program via NewProgram.
type ProgramBuilderOption func(*program)

// WithName is an option builder that sets the diagnostic name of the Program.
//
// Parameters:
//   - name: the program identifier
//
// Returns:
//   - ProgramBuilderOption: a function that applies the name option to a program
func WithName(name string) ProgramBuilderOption {
	return func(p *program) {
		p.name = name
	}
}

// WithLogger is an option builder that sets the logger compile and link failures are reported to.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - ProgramBuilderOption: a function that applies the logger option to a program
func WithLogger(logger *zap.Logger) ProgramBuilderOption {
	return func(p *program) {
		if logger != nil {
			p.logger = logger
		}
	}
}
