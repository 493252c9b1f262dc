// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package python

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dexec"
)

// CompileAll byte-compiles every `.py` file under dir, using the given Python interpreter
// executable (resolved from $PATH if not an absolute path).  It is a wrapper around Python's
// `compileall` module, and leaves the resulting `.pyc` files in `__pycache__` directories next to
// their sources.
func CompileAll(ctx context.Context, interpreter string, dir string) error {
	exe, err := dexec.LookPath(interpreter)
	if err != nil {
		return fmt.Errorf("could not find interpreter: %w", err)
	}

	cmd := dexec.CommandContext(ctx, exe, "-m", "compileall", "-q", dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%q: %w", cmd.Args, err)
	}

	return nil
}
