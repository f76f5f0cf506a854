// Command pcrender renders one node of a solution tree file as a standalone
// HTML page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/pcview/internal/config"
	"github.com/vancomm/pcview/internal/pc"
	"github.com/vancomm/pcview/internal/solution"
	"github.com/vancomm/pcview/internal/viewer"
)

var log = logrus.New()

type options struct {
	in       string
	path     string
	out      string
	verify   bool
	fragment bool
	workers  int
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var opts options
	fs := flag.NewFlagSet("pcrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.in, "in", "tree_data.js", "solution tree file")
	fs.StringVar(&opts.path, "path", "", "shapes chosen from the root, e.g. TI")
	fs.StringVar(&opts.out, "out", "", "output file (default stdout)")
	fs.BoolVar(&opts.verify, "verify", false, "reconstruct every placement of the tree before rendering")
	fs.BoolVar(&opts.fragment, "fragment", false, "write the node markup without the page")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "goroutines used by -verify")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return &opts, nil
}

func loadTree(name string) (*solution.Tree, error) {
	in, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	f, err := solution.ParseFile(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f.Tree()
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	tree, err := loadTree(opts.in)
	if err != nil {
		return err
	}

	if opts.verify {
		report, err := viewer.Verify(ctx, tree, opts.workers)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		log.WithFields(logrus.Fields{
			"nodes":       report.Nodes,
			"transitions": report.Transitions,
		}).Info("tree verified")
	}

	path, err := solution.ParsePath(opts.path)
	if err != nil {
		return err
	}
	v := viewer.New(func(p solution.Path) string {
		return "?path=" + p.String()
	})
	view, err := v.Display(tree, path)
	if err != nil {
		return err
	}

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if opts.fragment {
		return view.WriteFragment(w)
	}
	fragment, err := view.Fragment()
	if err != nil {
		return err
	}
	return viewer.RenderPage(w, viewer.PageData{
		Title:    fmt.Sprintf("%s [%s]", opts.in, path),
		Path:     path,
		Fragment: fragment,
		Crumbs:   v.Crumbs(path),
	})
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if err := config.SetupCoreLog(log); err != nil {
		log.Fatal(err)
	}
	pc.Log.SetLevel(log.GetLevel())
	solution.Log.SetLevel(log.GetLevel())

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.WithField("in", opts.in).Fatal(err)
	}
}
