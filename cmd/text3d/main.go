// Command text3d lays out text as 3D glyph meshes and optionally writes the
// result as a Wavefront OBJ file.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/fonts"
	"github.com/gogpu/text3d/mesh"
	"github.com/gogpu/text3d/scene"
	"github.com/gogpu/text3d/shape"
)

func main() {
	var (
		fontPath = flag.String("font", "", "TTF/OTF file (default: Go Regular)")
		text     = flag.String("text", "Hello, text3d!", `text to lay out ("\n" breaks lines)`)
		size     = flag.Float64("size", 48, "font size")
		parser   = flag.String("parser", "gotext", "font parser: gotext or sfnt")
		shaper   = flag.String("shaper", "harfbuzz", "shaper: harfbuzz or simple")
		late     = flag.Bool("late", false, "load the font only after the first cycle")
		outline  = flag.Bool("outline", false, "export triangle outlines instead of faces")
		output   = flag.String("output", "", "OBJ output file")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	text3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	data := goregular.TTF
	if *fontPath != "" {
		b, err := os.ReadFile(*fontPath) // #nosec G304 -- path comes from the command line
		if err != nil {
			log.Fatalf("Failed to read font: %v", err)
		}
		data = b
	}

	var lib *fonts.Library
	switch *parser {
	case "gotext":
		lib = fonts.NewLibrary(fonts.WithParser(fonts.ParseGoText))
	case "sfnt":
		lib = fonts.NewLibrary(fonts.WithParser(fonts.ParseSFNT))
	default:
		log.Fatalf("Unknown parser %q", *parser)
	}

	opts := []text3d.Option{}
	switch *shaper {
	case "harfbuzz":
	case "simple":
		opts = append(opts, text3d.WithShaper(&shape.SimpleShaper{}))
	default:
		log.Fatalf("Unknown shaper %q", *shaper)
	}

	arena := mesh.NewArena()
	graph := scene.NewGraph()
	opts = append(opts, text3d.WithStore(arena))
	sys := text3d.New(graph, lib, opts...)

	id := lib.Reserve()
	load := func() {
		if err := lib.SetData(id, data); err != nil {
			log.Fatalf("Failed to load font: %v", err)
		}
	}
	if !*late {
		load()
	}

	sys.Set(1, text3d.TextBlock{Sections: []text3d.Section{{
		Text: strings.ReplaceAll(*text, `\n`, "\n"),
		Style: text3d.Style{
			Font:  id,
			Size:  float32(*size),
			Color: gputypes.ColorWhite,
		},
	}}})

	for {
		st := sys.Update()
		log.Printf("cycle %d: committed=%d deferred=%d instances=%d",
			st.Cycle, st.Committed, st.Deferred, st.Instances)
		if !sys.Waiting(1) {
			break
		}
		load()
	}

	node, _ := graph.Node(1)
	cs := sys.Cache().Stats()
	log.Printf("%d instances, size %.1fx%.1f, %d meshes, cache hit rate %.0f%%",
		len(node.Children), node.Size.X, node.Size.Y, arena.MeshCount(), cs.HitRate())

	if *output == "" {
		return
	}
	if *outline {
		graph.SetRenderMode(text3d.RenderOutline)
	}
	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()
	if err := graph.WriteOBJ(f, arena, float32(*size)); err != nil {
		log.Fatalf("Failed to write OBJ: %v", err) //nolint:gocritic // exitAfterDefer
	}
	log.Printf("Scene saved to %s\n", *output)
}
