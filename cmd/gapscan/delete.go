package main

import (
	"fmt"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "This will permanently delete report %s.\n", c.ID)
		fmt.Fprintln(deps.Stderr, "Re-run with --force to confirm.")
		return nil
	}

	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.ID)
	return nil
}
