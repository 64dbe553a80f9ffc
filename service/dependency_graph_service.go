package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/jsparse"
	"github.com/ludo-technologies/deadwood/internal/resolve"
	"github.com/ludo-technologies/deadwood/internal/scan"
	"github.com/ludo-technologies/deadwood/internal/tsconfig"
	"github.com/ludo-technologies/deadwood/internal/version"
)

// DependencyGraphService builds a module dependency graph for the
// `deadwood deps` subcommand, sharing the scanner/parser/resolver
// stack the core analyzer uses rather than re-parsing with a separate
// AST layer.
type DependencyGraphService struct{}

// NewDependencyGraphService creates a new dependency graph service.
func NewDependencyGraphService() *DependencyGraphService {
	return &DependencyGraphService{}
}

// Analyze builds the dependency graph rooted at req.Paths[0] (or the
// current directory if no paths are given).
func (s *DependencyGraphService) Analyze(ctx context.Context, req *domain.DependencyGraphRequest) (*domain.DependencyGraphResponse, error) {
	root := "."
	if len(req.Paths) > 0 {
		root = req.Paths[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, domain.NewAnalysisError("failed to resolve root", err)
	}

	var warnings []string

	scanResult, err := scan.Walk(absRoot, scan.Options{})
	if err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("failed to scan %s", absRoot), err)
	}

	baseDirs := []string{absRoot, filepath.Join(absRoot, "src")}
	tsBaseDirs, aliases := tsconfig.Discover(absRoot)
	baseDirs = tsconfig.DedupPaths(append(baseDirs, tsBaseDirs...))

	modules := make(map[string]*domain.ModuleInfo, len(scanResult.SourceFiles))
	for file := range scanResult.SourceFiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		info, err := jsparse.ParseModule(file)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to parse %s: %v", file, err))
			continue
		}
		modules[file] = info
	}

	resolver := resolve.New(absRoot, baseDirs, aliases, scanResult.SourceFiles)
	includeExternal := req.IncludeExternal == nil || *req.IncludeExternal

	depGraph := s.buildGraph(absRoot, modules, resolver, includeExternal)
	depGraph.UpdateNodeFlags()

	return &domain.DependencyGraphResponse{
		Graph:       depGraph,
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}

func (s *DependencyGraphService) buildGraph(root string, modules map[string]*domain.ModuleInfo, resolver *resolve.Resolver, includeExternal bool) *domain.DependencyGraph {
	g := domain.NewDependencyGraph()

	for file := range modules {
		id := s.nodeID(root, file)
		g.AddNode(&domain.ModuleNode{
			ID:       id,
			Name:     filepath.Base(file),
			FilePath: id,
		})
	}

	for file, info := range modules {
		fromID := s.nodeID(root, file)
		for _, imp := range info.Imports {
			resolved := resolver.Resolve(file, imp.Specifier)
			edgeType := domain.EdgeTypeImport
			if imp.IsReexport {
				edgeType = domain.EdgeTypeReExport
			}

			if resolved != "" {
				toID := s.nodeID(root, resolved)
				g.AddEdge(&domain.DependencyEdge{
					From:       fromID,
					To:         toID,
					EdgeType:   edgeType,
					Specifiers: imp.Named,
					Weight:     1,
				})
				continue
			}

			if !includeExternal || resolver.IsLikelyLocal(imp.Specifier) {
				continue
			}

			pkg := resolve.PackageName(imp.Specifier)
			if _, ok := g.Nodes[pkg]; !ok {
				g.AddNode(&domain.ModuleNode{ID: pkg, Name: pkg, FilePath: pkg, IsExternal: true})
			}
			g.AddEdge(&domain.DependencyEdge{
				From:       fromID,
				To:         pkg,
				EdgeType:   edgeType,
				Specifiers: imp.Named,
				Weight:     1,
			})
		}
	}

	return g
}

func (s *DependencyGraphService) nodeID(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}
