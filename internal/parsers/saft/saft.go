// Package saft parses Skatteetaten SAF-T Financial specification pages
// into structured specification nodes.
package saft

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/parsers/htmlx"
)

var _ driven.SpecParser = (*Parser)(nil)

var (
	nodePathRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*(?:/[A-Za-z][A-Za-z0-9]*)*$`)
	cardinalityRe = regexp.MustCompile(`^(?:\d+|\d+\.\.(?:\d+|n|\*)|0\.\.(?:1|n|\*))$`)
	maxLengthRe   = regexp.MustCompile(`(?i)maks(?:imalt)?\s+(\d+)\s+tegn`)
)

// Column keywords for header-driven table extraction.
var (
	pathWords        = []string{"path", "node", "element", "felt", "field"}
	descWords        = []string{"description", "beskrivelse", "desc"}
	cardinalityWords = []string{"cardinality", "kardinalitet", "occurs", "forekomst"}
	typeWords        = []string{"type", "datatype", "format"}
	exampleWords     = []string{"example", "eksempel"}
)

// Parser extracts SAF-T specification nodes from documentation tables.
type Parser struct{}

// New creates a SAF-T spec parser.
func New() *Parser {
	return &Parser{}
}

// ParseNodes extracts every specification node described in the
// document's tables.
func (p *Parser) ParseNodes(in driven.ParseInput) ([]domain.SpecNode, error) {
	root, err := htmlx.Parse(in.Content)
	if err != nil {
		return nil, err
	}

	content := htmlx.Find(root, htmlx.ByTag("main"))
	if content == nil {
		content = htmlx.Find(root, htmlx.AnyOf(htmlx.ByClass("content"), htmlx.ByClass("article")))
	}
	if content == nil {
		content = root
	}

	var nodes []domain.SpecNode
	for _, table := range htmlx.FindAll(content, htmlx.ByTag("table")) {
		rows := htmlx.TableRows(table)
		if len(rows) < 2 {
			continue
		}
		cols := columnIndex(rows[0])
		if cols.path < 0 {
			continue
		}
		for _, row := range rows[1:] {
			if node, ok := fromRow(cols, row, in); ok {
				nodes = append(nodes, node)
			}
		}
	}

	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no spec nodes in %s", domain.ErrInvalidInput, in.Source.ID)
	}

	linkParents(nodes)
	logger.Debug("parsed %d spec nodes from %s", len(nodes), in.Source.ID)
	return nodes, nil
}

// columns maps header names to cell positions. Missing columns are -1.
type columns struct {
	path, desc, cardinality, dataType, example int
}

func columnIndex(header []string) columns {
	cols := columns{path: -1, desc: -1, cardinality: -1, dataType: -1, example: -1}
	match := func(name string, words []string) bool {
		lower := strings.ToLower(name)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
	for i, name := range header {
		switch {
		case cols.path < 0 && match(name, pathWords):
			cols.path = i
		case cols.desc < 0 && match(name, descWords):
			cols.desc = i
		case cols.cardinality < 0 && match(name, cardinalityWords):
			cols.cardinality = i
		case cols.example < 0 && match(name, exampleWords):
			cols.example = i
		case cols.dataType < 0 && match(name, typeWords):
			cols.dataType = i
		}
	}
	return cols
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func fromRow(cols columns, row []string, in driven.ParseInput) (domain.SpecNode, bool) {
	path := cleanPath(cell(row, cols.path))
	if path == "" {
		return domain.SpecNode{}, false
	}

	parts := strings.Split(path, "/")
	label := parts[len(parts)-1]

	description := cell(row, cols.desc)
	if description == "" {
		description = "SAF-T node: " + path
	}

	node := domain.SpecNode{
		NodeID:          strings.ReplaceAll(path, "/", "."),
		NodePath:        path,
		NodeLabel:       label,
		NodeLevel:       len(parts),
		DataType:        dataType(cell(row, cols.dataType)),
		Description:     description,
		Cardinality:     cleanCardinality(cell(row, cols.cardinality)),
		ExampleValue:    cell(row, cols.example),
		ValidationRules: validationRules(description),
		Provenance: domain.Provenance{
			SourceURL:    in.Source.URL,
			SHA256:       in.SHA256,
			Domain:       string(in.Source.Domain),
			SourceType:   string(in.Source.Type),
			Publisher:    in.Source.Publisher,
			Version:      in.Source.Version,
			Jurisdiction: in.Source.Jurisdiction,
		},
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	return node, true
}

// cleanPath normalises separators and rejects values that are not
// XML element paths.
func cleanPath(raw string) string {
	path := strings.TrimSpace(raw)
	path = strings.ReplaceAll(path, ".", "/")
	path = strings.Trim(path, "/")
	if !nodePathRe.MatchString(path) {
		return ""
	}
	return path
}

func cleanCardinality(raw string) string {
	c := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	c = strings.ReplaceAll(c, "–", "..")
	c = strings.ReplaceAll(c, "-", "..")
	if !cardinalityRe.MatchString(c) {
		return "1..1"
	}
	return c
}

func dataType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case t == "":
		return "string"
	case strings.Contains(t, "decimal") || strings.Contains(t, "amount") || strings.Contains(t, "beløp"):
		return "decimal"
	case strings.Contains(t, "date") || strings.Contains(t, "dato"):
		return "date"
	case strings.Contains(t, "int"):
		return "integer"
	case strings.Contains(t, "bool"):
		return "boolean"
	default:
		return t
	}
}

// validationRules pulls constraint phrases out of the description.
func validationRules(description string) []string {
	var rules []string
	lower := strings.ToLower(description)
	if strings.Contains(lower, "obligatorisk") || strings.Contains(lower, "mandatory") || strings.Contains(lower, "required") {
		rules = append(rules, "required")
	}
	if strings.Contains(lower, "unik") || strings.Contains(lower, "unique") {
		rules = append(rules, "unique")
	}
	if m := maxLengthRe.FindStringSubmatch(description); m != nil {
		rules = append(rules, "max_length:"+m[1])
	}
	return rules
}

// linkParents fills ParentID for nodes whose parent path also appears
// in the document.
func linkParents(nodes []domain.SpecNode) {
	byPath := make(map[string]string, len(nodes))
	for _, n := range nodes {
		byPath[n.NodePath] = n.NodeID
	}
	for i := range nodes {
		if idx := strings.LastIndex(nodes[i].NodePath, "/"); idx > 0 {
			nodes[i].ParentID = byPath[nodes[i].NodePath[:idx]]
		}
	}
}
