// Package batchscript writes a shell script that runs one mirpair command per
// miRAW experiment folder.
package batchscript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Commands a script can invoke.
const (
	CommandPairing   = "pairing"
	CommandBindingAt = "binding-at"
	CommandConflicts = "conflicts"
)

// Options describes the script.
type Options struct {
	OutFolder string // experiment parent folder; the script lands here too
	Name      string // script base name, ".sh" is appended
	Tool      string // executable to call; default "mirpair"
	Command   string // CommandPairing (default), CommandBindingAt or CommandConflicts
	Pos       int    // position for CommandBindingAt

	Positive, Negative, All bool // target-site selectors passed through
	CRLF                    bool // Windows line endings
}

func (o Options) validate() error {
	if o.OutFolder == "" {
		return errors.New("output folder is required")
	}
	if o.Name == "" {
		return errors.New("script name is required")
	}
	if strings.ContainsRune(o.Name, filepath.Separator) {
		return fmt.Errorf("script name %q must not contain a path separator", o.Name)
	}
	switch o.Command {
	case "", CommandPairing, CommandBindingAt:
	case CommandConflicts:
		// conflicts always reads every table of the experiment
		return nil
	default:
		return fmt.Errorf("unknown command %q", o.Command)
	}
	if !o.Positive && !o.Negative && !o.All {
		return errors.New("select at least one of positive, negative or all target sites")
	}
	return nil
}

// Experiments lists the sub-folders of dir, sorted by name.
func Experiments(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// Render returns the script text for the given experiment folders.
func Render(o Options, experiments []string) string {
	nl := "\n"
	if o.CRLF {
		nl = "\r\n"
	}
	tool := o.Tool
	if tool == "" {
		tool = "mirpair"
	}
	cmd := o.Command
	if cmd == "" {
		cmd = CommandPairing
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh" + nl)
	for _, dir := range experiments {
		if cmd == CommandConflicts {
			b.WriteString(quote(tool) + " " + cmd + " " + quote(dir) + nl)
			continue
		}
		parts := []string{quote(tool), cmd}
		if cmd == CommandBindingAt {
			parts = append(parts, "--pos", strconv.Itoa(o.Pos))
		}
		parts = append(parts, "--experiment", quote(dir))
		if o.Positive {
			parts = append(parts, "-p")
		}
		if o.Negative {
			parts = append(parts, "-n")
		}
		if o.All {
			parts = append(parts, "-a")
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString(nl)
	}
	return b.String()
}

// Write renders the script for every experiment under o.OutFolder and saves
// it as <OutFolder>/<Name>.sh. It returns the script path and the number of
// experiments listed.
func Write(o Options) (string, int, error) {
	if err := o.validate(); err != nil {
		return "", 0, err
	}
	fi, err := os.Stat(o.OutFolder)
	if err != nil {
		return "", 0, err
	}
	if !fi.IsDir() {
		return "", 0, fmt.Errorf("%s is not a directory", o.OutFolder)
	}
	exps, err := Experiments(o.OutFolder)
	if err != nil {
		return "", 0, err
	}
	path := filepath.Join(o.OutFolder, o.Name+".sh")
	if err := os.WriteFile(path, []byte(Render(o, exps)), 0o755); err != nil {
		return "", 0, err
	}
	return path, len(exps), nil
}

// quote single-quotes s when the shell would otherwise split or expand it.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
