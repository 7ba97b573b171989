/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"os"

	"github.com/aleksandradimitrov/wikipedia-task/internal/state"
	"github.com/aleksandradimitrov/wikipedia-task/internal/tui/render"
	"github.com/aleksandradimitrov/wikipedia-task/pkg/cmd/root"
)

func Execute() {
	stderr := render.New(os.Stderr)

	s, err := state.NewState()
	if err != nil {
		stderr.Error(err)
		os.Exit(1)
	}

	rootCmd, err := root.NewCmdRoot(s)
	if err != nil {
		stderr.Error(err)
		os.Exit(1)
	}

	execErr := rootCmd.ExecuteContext(context.Background())
	if closeErr := s.Close(); closeErr != nil {
		stderr.Error(closeErr)
	}
	if execErr != nil {
		stderr.Error(execErr)
		os.Exit(1)
	}
}
