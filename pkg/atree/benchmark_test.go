package atree_test

import (
	"testing"

	"github.com/Sumatoshi-tech/rolenav/pkg/atree"
	"github.com/Sumatoshi-tech/rolenav/pkg/role"
	"github.com/Sumatoshi-tech/rolenav/pkg/snapshot"
)

const (
	// benchSeed fixes the generated tree shape across runs.
	benchSeed = 42

	// benchNodes is large enough that the parallel paths actually fork.
	benchNodes = 200_000

	// benchChildren is the maximum fanout of the generated tree.
	benchChildren = 8

	// benchWorkers is the worker count for parallel benchmarks.
	benchWorkers = 4
)

// benchRole is scanned for in the find/count benchmarks. Any role works;
// the generator draws roles uniformly, so rare and common roles behave
// alike at this tree size.
const benchRole = role.Heading

func benchTree(b *testing.B) *atree.Tree {
	b.Helper()

	tree, err := atree.Build(snapshot.Generate(benchSeed, benchNodes, benchChildren))
	if err != nil {
		b.Fatal(err)
	}

	return tree
}

func BenchmarkBuild(b *testing.B) {
	root := snapshot.Generate(benchSeed, benchNodes, benchChildren)

	b.ResetTimer()

	for range b.N {
		if _, err := atree.Build(root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildCounting(b *testing.B) {
	root := snapshot.Generate(benchSeed, benchNodes, benchChildren)

	b.ResetTimer()

	for range b.N {
		if _, err := atree.BuildCounting(root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHowMany_FlatScan(b *testing.B) {
	tree := benchTree(b)

	b.ResetTimer()

	for range b.N {
		_ = tree.HowMany(benchRole)
	}
}

func BenchmarkHowMany_Pruned(b *testing.B) {
	tree := benchTree(b)

	b.ResetTimer()

	for range b.N {
		_ = tree.HowManyRoleset(benchRole)
	}
}

func BenchmarkHowMany_Parallel(b *testing.B) {
	par := benchTree(b).Parallel(benchWorkers, 0)

	b.ResetTimer()

	for range b.N {
		_ = par.HowMany(benchRole)
	}
}

func BenchmarkFindFirst_LinearScan(b *testing.B) {
	tree := benchTree(b)

	b.ResetTimer()

	for range b.N {
		_, _ = tree.FindFirst(benchRole)
	}
}

func BenchmarkFindFirst_Pruned(b *testing.B) {
	tree := benchTree(b)

	b.ResetTimer()

	for range b.N {
		_, _ = tree.FindFirstRoleset(benchRole)
	}
}

func BenchmarkFindFirst_Stack(b *testing.B) {
	tree := benchTree(b)

	b.ResetTimer()

	for range b.N {
		_, _ = tree.FindFirstStack(benchRole)
	}
}

func BenchmarkFindFirst_Parallel(b *testing.B) {
	par := benchTree(b).Parallel(benchWorkers, 0)

	b.ResetTimer()

	for range b.N {
		_, _ = par.FindFirst(benchRole)
	}
}

func BenchmarkMaxDepth_Parallel(b *testing.B) {
	par := benchTree(b).Parallel(benchWorkers, 0)

	b.ResetTimer()

	for range b.N {
		_ = par.MaxDepth()
	}
}
