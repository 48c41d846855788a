package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/choreo/pkg/choreography"
	"github.com/go-drift/choreo/pkg/document"
)

func loadDocument(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := document.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func buildSchedule(doc *document.Document) (*choreography.Schedule, error) {
	chain, err := doc.Chain(choreography.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return chain.Build()
}

// scheduleFromArgs loads the document named by the first argument and
// builds it. The remaining arguments are returned.
func scheduleFromArgs(args []string, usage string) (*choreography.Schedule, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("document is required\n\nUsage: %s", usage)
	}
	doc, err := loadDocument(args[0])
	if err != nil {
		return nil, nil, err
	}
	s, err := buildSchedule(doc)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().Str("document", args[0]).Int("segments", len(doc.Segments)).Dur("total", s.TotalDuration()).Msg("schedule built")
	return s, args[1:], nil
}
