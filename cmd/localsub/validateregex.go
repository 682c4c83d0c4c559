package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
)

func newValidateRegexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-regex <pattern>",
		Short: "Check whether a regex pattern compiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := regexp.Compile(args[0]); err != nil {
				fmt.Println(err.Error())
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}
