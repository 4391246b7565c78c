// Command treedemo reproduces, as cobra subcommands, the scenarios the
// original reference implementation shipped as example binaries
// (examples/demo.rs, examples/tree.rs): concurrent moves of the same
// node, concurrent moves that would create a cycle, log truncation once
// ops are causally stable, an iterative deep-tree walk, and reclaiming a
// deleted subtree from the trash. It exists to demonstrate the library's
// public surface, not as a product front-end for the CRDT itself.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	gocrdt "github.com/cshekharsharma/go-treecrdt"
	"github.com/cshekharsharma/go-treecrdt/treeutil"
)

type demoID = uuid.UUID
type demoMeta = string
type demoActor = string

func main() {
	root := &cobra.Command{
		Use:   "treedemo",
		Short: "Demonstrations of the move-tree CRDT",
	}
	root.AddCommand(
		concurrentMovesCmd(),
		concurrentMovesCycleCmd(),
		truncateLogCmd(),
		walkDeepTreeCmd(),
		moveToTrashCmd(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newNamedIDs(names ...string) map[string]demoID {
	ids := make(map[string]demoID, len(names))
	for _, n := range names {
		ids[n] = treeutil.NewID()
	}
	return ids
}

func printTree(tree *gocrdt.Tree[demoID, demoMeta], root demoID, label string) {
	fmt.Printf("%s\n", label)
	tree.Walk(root, func(id demoID, depth int) {
		name := "?"
		if n, ok := tree.Find(id); ok {
			name = n.Metadata
		} else if id == treeutil.Root {
			name = "/"
		}
		fmt.Printf("%s%s\n", indent(depth), name)
	})
}

func indent(depth int) string {
	out := ""
	for i := 0; i < depth; i++ {
		out += "  "
	}
	return out
}

// concurrentMovesCmd reproduces demo_concurrent_moves: two replicas move
// the same node to two different new parents "simultaneously"; last-
// writer-wins resolves the conflict identically on both sides.
func concurrentMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "concurrent-moves",
		Short: "Two replicas concurrently move the same node; LWW resolves it",
		RunE: func(cmd *cobra.Command, args []string) error {
			r1 := gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-1")
			r2 := gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-2")

			ids := newNamedIDs("root", "a", "b", "c")

			setup := r1.OpMoves([]gocrdt.Move[demoID, demoMeta]{
				{ParentID: treeutil.Root, Metadata: "root", ChildID: ids["root"]},
				{ParentID: ids["root"], Metadata: "a", ChildID: ids["a"]},
				{ParentID: ids["root"], Metadata: "b", ChildID: ids["b"]},
				{ParentID: ids["root"], Metadata: "c", ChildID: ids["c"]},
			})
			if err := r1.ApplyOps(setup); err != nil {
				return err
			}
			if err := r2.ApplyOps(setup); err != nil {
				return err
			}

			printTree(r1.Tree(), ids["root"], "initial tree (both replicas)")

			move1 := r1.OpMove(ids["b"], "a", ids["a"])
			move2 := r2.OpMove(ids["c"], "a", ids["a"])

			if err := r1.ApplyOp(move1); err != nil {
				return err
			}
			if err := r2.ApplyOp(move2); err != nil {
				return err
			}
			if err := r1.ApplyOp(move2); err != nil {
				return err
			}
			if err := r2.ApplyOp(move1); err != nil {
				return err
			}

			printTree(r1.Tree(), ids["root"], "\nreplica-1 after merge")
			printTree(r2.Tree(), ids["root"], "\nreplica-2 after merge")

			if r1.State().Equal(r2.State()) {
				fmt.Println("\nconverged: replica-1 and replica-2 agree")
			} else {
				fmt.Println("\nwarning: replicas diverged")
			}
			return nil
		},
	}
}

// concurrentMovesCycleCmd reproduces the paper's other headline scenario:
// two replicas concurrently try to move a node under its own descendant,
// which would create a cycle. Ops take effect in timestamp order, so the
// earlier move is applied and the later-timestamped one becomes a
// cycle-guard no-op.
func concurrentMovesCycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "concurrent-moves-cycle",
		Short: "Two replicas concurrently attempt a cycle-inducing move",
		RunE: func(cmd *cobra.Command, args []string) error {
			r1 := gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-1")
			r2 := gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-2")

			ids := newNamedIDs("root", "a", "b", "c")
			setup := r1.OpMoves([]gocrdt.Move[demoID, demoMeta]{
				{ParentID: treeutil.Root, Metadata: "root", ChildID: ids["root"]},
				{ParentID: ids["root"], Metadata: "a", ChildID: ids["a"]},
				{ParentID: ids["a"], Metadata: "c", ChildID: ids["c"]},
				{ParentID: ids["root"], Metadata: "b", ChildID: ids["b"]},
			})
			if err := r1.ApplyOps(setup); err != nil {
				return err
			}
			if err := r2.ApplyOps(setup); err != nil {
				return err
			}

			printTree(r1.Tree(), ids["root"], "initial tree (both replicas)")

			moveBUnderA := r1.OpMove(ids["a"], "b", ids["b"])
			moveAUnderB := r2.OpMove(ids["b"], "a", ids["a"])

			if err := r1.ApplyOp(moveBUnderA); err != nil {
				return err
			}
			if err := r2.ApplyOp(moveAUnderB); err != nil {
				return err
			}
			if err := r1.ApplyOp(moveAUnderB); err != nil {
				return err
			}
			if err := r2.ApplyOp(moveBUnderA); err != nil {
				return err
			}

			printTree(r1.Tree(), ids["root"], "\nreplica-1 after merge")
			printTree(r2.Tree(), ids["root"], "\nreplica-2 after merge")

			if r1.State().Equal(r2.State()) {
				fmt.Println("\nconverged: replica-1 and replica-2 agree; the later-timestamped move became a no-op")
			} else {
				fmt.Println("\nwarning: replicas diverged")
			}
			return nil
		},
	}
}

// truncateLogCmd reproduces demo_truncate_log: three replicas each mint
// and broadcast one op; once all three have seen all three ops, the
// causally stable threshold is the oldest of the three. TruncateLog drops
// only entries strictly older than the threshold, so here it removes
// nothing and reports false.
func truncateLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "truncate-log",
		Short: "Three replicas converge, then truncate their logs at the stable threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			replicas := []*gocrdt.Replica[demoID, demoMeta, demoActor]{
				gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-1"),
				gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-2"),
				gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-3"),
			}

			var allOps []gocrdt.Op[demoID, demoMeta, demoActor]
			for _, r := range replicas {
				op := r.OpMove(treeutil.Root, r.ID(), treeutil.NewID())
				if err := r.ApplyOp(op); err != nil {
					return err
				}
				allOps = append(allOps, op)
			}

			for _, r := range replicas {
				if err := r.ApplyOps(allOps); err != nil {
					return err
				}
			}

			for _, r := range replicas {
				fmt.Printf("%s: log length before truncation = %d\n", r.ID(), len(r.State().Log()))
			}

			for _, r := range replicas {
				truncated := r.TruncateLog()
				fmt.Printf("%s: truncated=%v, log length after = %d\n", r.ID(), truncated, len(r.State().Log()))
			}
			return nil
		},
	}
}

// walkDeepTreeCmd reproduces demo_walk_deep_tree: build a long chain and
// walk it with the iterative traversal, confirming it doesn't blow the
// stack the way a naive recursive walk might.
func walkDeepTreeCmd() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "walk-deep-tree",
		Short: "Build and iteratively walk a deep chain of moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-1")

			parent := treeutil.Root
			for i := 0; i < depth; i++ {
				child := treeutil.NewID()
				if err := r.ApplyOp(r.OpMove(parent, fmt.Sprintf("node-%d", i), child)); err != nil {
					return err
				}
				parent = child
			}

			count := 0
			r.Tree().Walk(treeutil.Root, func(id demoID, d int) { count++ })
			fmt.Printf("walked %d nodes over %d levels without recursing\n", count, depth)
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 10000, "length of the chain to build and walk")
	return cmd
}

// moveToTrashCmd reproduces demo_move_to_trash: delete a subtree by
// moving it under the trash, confirm it's gone from the live tree but
// still present in the log, then demonstrate the post-truncation
// reclamation path via Replica.TreeMut().RmSubtree.
func moveToTrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move-to-trash",
		Short: "Delete a subtree by moving it to trash, then reclaim it after truncation",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := gocrdt.NewReplica[demoID, demoMeta, demoActor]("replica-1")

			ids := newNamedIDs("root", "project", "readme")
			setup := r.OpMoves([]gocrdt.Move[demoID, demoMeta]{
				{ParentID: treeutil.Root, Metadata: "root", ChildID: ids["root"]},
				{ParentID: ids["root"], Metadata: "project", ChildID: ids["project"]},
				{ParentID: ids["project"], Metadata: "README.md", ChildID: ids["readme"]},
			})
			if err := r.ApplyOps(setup); err != nil {
				return err
			}
			printTree(r.Tree(), ids["root"], "before deletion")

			del := r.OpMove(treeutil.Trash, "project", ids["project"])
			if err := r.ApplyOp(del); err != nil {
				return err
			}
			if r.Tree().IsAncestor(ids["project"], ids["root"]) {
				fmt.Println("\nunexpected: project is still under root after delete")
			} else {
				fmt.Println("\nproject removed from the live tree (still present in the log)")
			}

			// In this single-replica demo the delete op is the only
			// latest-seen entry, so it is the causally stable threshold
			// and no older op can still arrive; truncate and reclaim.
			r.TruncateLog()
			r.TreeMut().RmSubtree(treeutil.Trash, false)
			fmt.Println("trash emptied after truncation; no future op can resurrect it")
			return nil
		},
	}
}
