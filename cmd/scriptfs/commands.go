package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmgilman/scriptfs"
)

// openOptions builds the facade options from the shared mode flags.
func openOptions(mode, charset string, binary bool) scriptfs.OpenOptions {
	if binary && !strings.ContainsAny(mode, "bB") {
		mode += "b"
	}
	return scriptfs.OpenOptions{Mode: mode, Charset: charset}
}

func newReadCmd(a *app) *cobra.Command {
	var charset string
	var binary bool

	cmd := &cobra.Command{
		Use:   "read PATH",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.fs.Read(args[0], openOptions("r", charset, binary))
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}
	cmd.Flags().StringVar(&charset, "charset", "", "IANA charset of the file")
	cmd.Flags().BoolVarP(&binary, "binary", "b", false, "read raw bytes")
	return cmd
}

func newWriteCmd(a *app) *cobra.Command {
	var charset string
	var binary, appendMode bool

	cmd := &cobra.Command{
		Use:   "write PATH [CONTENT]",
		Short: "Write CONTENT, or standard input, to a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			if len(args) == 2 {
				content = args[1]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading standard input: %w", err)
				}
				content = string(data)
			}

			mode := "w"
			if appendMode {
				mode = "a"
			}
			return a.fs.Write(args[0], content, openOptions(mode, charset, binary))
		},
	}
	cmd.Flags().StringVar(&charset, "charset", "", "IANA charset to encode the content with")
	cmd.Flags().BoolVarP(&binary, "binary", "b", false, "write raw bytes")
	cmd.Flags().BoolVarP(&appendMode, "append", "a", false, "append instead of truncating")
	return cmd
}

func newTouchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "touch PATH...",
		Short: "Create empty files, leaving existing ones untouched",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				if err := a.fs.Touch(path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSizeCmd(a *app) *cobra.Command {
	var human bool

	cmd := &cobra.Command{
		Use:   "size PATH",
		Short: "Print the size of a file in bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := a.fs.Size(args[0])
			if err != nil {
				return err
			}
			if human {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), humanize.IBytes(uint64(size)))
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), size)
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&human, "human", "H", false, "print a human readable size")
	return cmd
}

// twoPathCmd builds a command taking SRC and DST.
func twoPathCmd(use, short string, run func(src, dst string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SRC DST",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], args[1])
		},
	}
}

func newCopyCmd(a *app) *cobra.Command {
	return twoPathCmd("copy", "Copy a file", func(src, dst string) error {
		return a.fs.Copy(src, dst)
	})
}

func newCopyTreeCmd(a *app) *cobra.Command {
	return twoPathCmd("copy-tree", "Copy a directory recursively", func(src, dst string) error {
		return a.fs.CopyTree(src, dst)
	})
}

func newMoveCmd(a *app) *cobra.Command {
	return twoPathCmd("move", "Move a file by copying it and removing the source", func(src, dst string) error {
		return a.fs.Move(src, dst)
	})
}

// eachPathCmd builds a command applying run to every argument in order and
// stopping at the first failure.
func eachPathCmd(use, short string, run func(path string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PATH...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				if err := run(path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return eachPathCmd("rm", "Remove files", func(path string) error {
		return a.fs.Remove(path)
	})
}

func newRemoveDirectoryCmd(a *app) *cobra.Command {
	return eachPathCmd("rmdir", "Remove empty directories", func(path string) error {
		return a.fs.RemoveDirectory(path)
	})
}

func newRemoveTreeCmd(a *app) *cobra.Command {
	return eachPathCmd("rm-tree", "Remove directories and their content", func(path string) error {
		return a.fs.RemoveTree(path)
	})
}

func newExistsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists PATH",
		Short: "Print whether a file or directory exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.fs.Exists(args[0]))
			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [PATH]",
		Short: "List a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			names, err := a.fs.List(path)
			if err != nil {
				return err
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newMakeDirectoryCmd(a *app) *cobra.Command {
	var parents bool

	cmd := eachPathCmd("mkdir", "Create directories", func(path string) error {
		if parents {
			return a.fs.MakeTree(path)
		}
		return a.fs.MakeDirectory(path)
	})
	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parents and accept existing directories")
	return cmd
}

func newJoinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "join PART...",
		Short: "Join path parts with '/'",
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := make([]any, len(args))
			for i, arg := range args {
				parts[i] = arg
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.fs.Join(parts...))
			return err
		},
	}
}

func newSplitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "split PATH",
		Short: "Print the components of a path, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, part := range a.fs.Split(args[0]) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), part); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
