// Command pdfwalk walks a PDF's page tree and prints what the walker sees:
// the full callback trace, extracted text, or document metadata.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/trimmer-io/go-xmp/xmp"

	"pdfwalk/objects"
	"pdfwalk/observability"
	"pdfwalk/receivers"
	"pdfwalk/walker"
	"pdfwalk/xref"
)

type options struct {
	pdfPath  string
	text     bool
	trace    bool
	metadata bool
	xmpDump  bool
	verbose  bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfwalk: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdfwalk: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pdfwalk [flags] <pdf>\n")
		flag.PrintDefaults()
	}
	flag.BoolVar(&opts.text, "text", false, "Extract text per page")
	flag.BoolVar(&opts.trace, "trace", false, "Print every walker callback")
	flag.BoolVar(&opts.metadata, "metadata", false, "Dump document metadata")
	flag.BoolVar(&opts.xmpDump, "xmp", false, "Decode the XMP metadata packet")
	flag.BoolVar(&opts.verbose, "v", false, "Log swallowed anomalies to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing pdf path")
	}
	opts.pdfPath = flag.Arg(0)
	if !opts.text && !opts.trace && !opts.metadata && !opts.xmpDump {
		opts.text = true
	}
	return opts, nil
}

func run(opts options) error {
	file, err := os.Open(opts.pdfPath)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	x, err := xref.Load(context.Background(), file, xref.LoadConfig{})
	if err != nil {
		return fmt.Errorf("load pdf: %w", err)
	}
	root := x.Root()
	if root == nil {
		return fmt.Errorf("document has no catalog")
	}

	log := observability.Logger(observability.NopLogger{})
	if opts.verbose {
		log = observability.Text(os.Stderr)
	}

	if opts.metadata || opts.xmpDump {
		if err := dumpMetadata(x, root, opts, log); err != nil {
			return err
		}
	}
	if opts.trace {
		recv := &receivers.TraceReceiver{}
		w := walker.New(x, recv, walker.WithLogger(log))
		if err := w.Document(root); err != nil {
			return err
		}
		fmt.Print(recv.Dump())
	}
	if opts.text {
		recv := &receivers.TextReceiver{}
		w := walker.New(x, recv, walker.WithLogger(log))
		if err := w.Document(root); err != nil {
			return err
		}
		for _, page := range recv.Pages() {
			fmt.Printf("--- page %d ---\n%s\n", page.Page+1, page.Content)
		}
	}
	return nil
}

type metadataPrinter struct {
	walker.NopReceiver
	xmpDump bool
	xmpErr  error
}

func (m *metadataPrinter) PDFVersion(version string) { fmt.Printf("version: %s\n", version) }
func (m *metadataPrinter) PageCount(n int)           { fmt.Printf("pages: %d\n", n) }

func (m *metadataPrinter) Metadata(info objects.Dictionary) {
	for _, key := range info.Keys() {
		if val, ok := objects.StringValue(objects.DictGet(info, key)); ok {
			fmt.Printf("%s: %s\n", key, val)
		}
	}
}

func (m *metadataPrinter) XMLMetadata(data []byte) {
	if !m.xmpDump {
		return
	}
	doc := &xmp.Document{}
	if err := xmp.Unmarshal(data, doc); err != nil {
		m.xmpErr = fmt.Errorf("decode xmp: %w", err)
		return
	}
	paths, err := doc.ListPaths()
	if err != nil {
		m.xmpErr = fmt.Errorf("list xmp paths: %w", err)
		return
	}
	for _, p := range paths {
		fmt.Printf("xmp %s = %s\n", p.Path, p.Value)
	}
}

func dumpMetadata(x *xref.Xref, root objects.Dictionary, opts options, log observability.Logger) error {
	recv := &metadataPrinter{xmpDump: opts.xmpDump}
	w := walker.New(x, recv, walker.WithLogger(log))
	w.Metadata(root, x.Info())
	return recv.xmpErr
}
