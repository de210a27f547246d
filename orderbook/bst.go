package orderbook

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

const nilNode = -1

type bstNode[V any] struct {
	key   int64
	value V
	left  int
	right int
}

// BinarySearchTree is an unbalanced binary search tree keyed by price
// Nodes live in an arena slice and link to each other by index; freed slots are
// reused through a free list. There is no rebalancing: inserting keys in sorted
// order degrades the tree into a list of depth n.
//
// Deleting a node with two children copies its in-order successor's key and
// value into it and then deletes the successor, so a slot does not keep its
// key across deletes of its ancestors. Never hold on to node indices across a
// mutation.
type BinarySearchTree[V any] struct {
	nodes []bstNode[V]
	free  []int
	root  int
	size  int
}

// NewBinarySearchTree creates an empty tree
func NewBinarySearchTree[V any]() *BinarySearchTree[V] {
	return &BinarySearchTree[V]{root: nilNode}
}

// Search descends from the root comparing key against each node
func (t *BinarySearchTree[V]) Search(key int64) (V, bool) {
	i := t.root
	for i != nilNode {
		n := &t.nodes[i]
		switch {
		case key < n.key:
			i = n.left
		case key > n.key:
			i = n.right
		default:
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// Insert adds key as a new leaf
// Inserting an existing key is a caller bug: Search first and update in place.
func (t *BinarySearchTree[V]) Insert(key int64, value V) {
	parent, goLeft := nilNode, false
	for i := t.root; i != nilNode; {
		n := &t.nodes[i]
		switch {
		case key < n.key:
			parent, goLeft, i = i, true, n.left
		case key > n.key:
			parent, goLeft, i = i, false, n.right
		default:
			panic(fmt.Sprintf("bst: duplicate key %d", key))
		}
	}

	// alloc may grow the arena, so link by index only after it returns
	idx := t.alloc(key, value)
	switch {
	case parent == nilNode:
		t.root = idx
	case goLeft:
		t.nodes[parent].left = idx
	default:
		t.nodes[parent].right = idx
	}
}

// Delete removes key and reports whether it was present
func (t *BinarySearchTree[V]) Delete(key int64) bool {
	var deleted bool
	t.root, deleted = t.deleteFrom(t.root, key)
	return deleted
}

// deleteFrom deletes key from the subtree at i and returns the subtree's new root
func (t *BinarySearchTree[V]) deleteFrom(i int, key int64) (int, bool) {
	if i == nilNode {
		return nilNode, false
	}

	// deletion never grows the arena, so n stays valid
	n := &t.nodes[i]
	var deleted bool
	switch {
	case key < n.key:
		n.left, deleted = t.deleteFrom(n.left, key)
		return i, deleted
	case key > n.key:
		n.right, deleted = t.deleteFrom(n.right, key)
		return i, deleted
	}

	// zero or one child: promote the child
	if n.left == nilNode || n.right == nilNode {
		child := n.left
		if child == nilNode {
			child = n.right
		}
		t.release(i)
		return child, true
	}

	// two children: take the successor's value, then delete the successor
	succ := n.right
	for t.nodes[succ].left != nilNode {
		succ = t.nodes[succ].left
	}
	n.key, n.value = t.nodes[succ].key, t.nodes[succ].value
	n.right, _ = t.deleteFrom(n.right, n.key)
	return i, true
}

// InOrder visits nodes ascending, or descending (right subtree first)
// Traversal stops as soon as fn returns false; the result is false in that case.
func (t *BinarySearchTree[V]) InOrder(descending bool, fn func(key int64, value V) bool) bool {
	return t.inOrder(t.root, descending, fn)
}

func (t *BinarySearchTree[V]) inOrder(i int, descending bool, fn func(int64, V) bool) bool {
	if i == nilNode {
		return true
	}
	n := t.nodes[i]
	first, second := n.left, n.right
	if descending {
		first, second = second, first
	}
	if !t.inOrder(first, descending, fn) {
		return false
	}
	if !fn(n.key, n.value) {
		return false
	}
	return t.inOrder(second, descending, fn)
}

// All returns a lazy in-order sequence
func (t *BinarySearchTree[V]) All(descending bool) iter.Seq2[int64, V] {
	return func(yield func(int64, V) bool) {
		t.InOrder(descending, yield)
	}
}

// Len returns the number of keys
func (t *BinarySearchTree[V]) Len() int {
	return t.size
}

// Height returns the number of nodes on the longest root-to-leaf path
func (t *BinarySearchTree[V]) Height() int {
	return t.height(t.root)
}

func (t *BinarySearchTree[V]) height(i int) int {
	if i == nilNode {
		return 0
	}
	return 1 + max(t.height(t.nodes[i].left), t.height(t.nodes[i].right))
}

// Validate checks that an in-order walk yields strictly increasing keys
func (t *BinarySearchTree[V]) Validate() error {
	var (
		prev  int64
		count int
		err   error
	)
	t.InOrder(false, func(key int64, _ V) bool {
		if count > 0 && key <= prev {
			err = errors.Errorf("bst: key %d follows %d in order", key, prev)
			return false
		}
		prev = key
		count++
		return true
	})
	if err != nil {
		return err
	}
	if count != t.size {
		return errors.Errorf("bst: %d reachable nodes, size %d", count, t.size)
	}
	return nil
}

// Render draws the tree sideways: right subtree above, left subtree below
func (t *BinarySearchTree[V]) Render() string {
	var b strings.Builder
	t.render(&b, t.root, 0, ' ')
	return b.String()
}

func (t *BinarySearchTree[V]) render(b *strings.Builder, i, depth int, branch byte) {
	if i == nilNode {
		return
	}
	t.render(b, t.nodes[i].right, depth+1, '/')
	fmt.Fprintf(b, "%s%c%d\n", strings.Repeat(" ", 6*depth), branch, t.nodes[i].key)
	t.render(b, t.nodes[i].left, depth+1, '\\')
}

func (t *BinarySearchTree[V]) alloc(key int64, value V) int {
	t.size++
	node := bstNode[V]{key: key, value: value, left: nilNode, right: nilNode}
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[idx] = node
		return idx
	}
	t.nodes = append(t.nodes, node)
	return len(t.nodes) - 1
}

func (t *BinarySearchTree[V]) release(i int) {
	t.size--
	t.nodes[i] = bstNode[V]{left: nilNode, right: nilNode}
	t.free = append(t.free, i)
}
