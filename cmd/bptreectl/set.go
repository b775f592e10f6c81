package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lancejpollard/bplustree/backend/btree"
)

var capacityFlag = cli.IntFlag{
	Name:  "capacity",
	Usage: "maximum number of items/children per node",
	Value: 4,
}

var setCommand = cli.Command{
	Action: runSet,
	Name:   "set",
	Usage:  "drives an in-memory Set of integers through a sequence of operations",
	Flags: []cli.Flag{
		&capacityFlag,
	},
	ArgsUsage: "[insert:N|remove:N|has:N|verify ...]",
}

// runSet applies each positional argument, in order, as an operation on a
// fresh Set[int], logging the result of every step before finishing with a
// structural verification and a dump of the final contents.
func runSet(ctx *cli.Context) error {
	capacity := ctx.Int(capacityFlag.Name)
	s := btree.NewSet[int](capacity, btree.OrderedComparator[int]{})

	for _, arg := range ctx.Args().Slice() {
		op, value, hasValue := splitOp(arg)
		switch op {
		case "insert":
			n, err := parseInt(value)
			if err != nil {
				return err
			}
			s.Insert(n)
			log.Printf("insert %d -> len=%d", n, s.Len())
		case "remove":
			n, err := parseInt(value)
			if err != nil {
				return err
			}
			s.Remove(n)
			log.Printf("remove %d -> len=%d", n, s.Len())
		case "has":
			n, err := parseInt(value)
			if err != nil {
				return err
			}
			log.Printf("has %d -> %v", n, s.Has(n))
		case "verify":
			if hasValue {
				return fmt.Errorf("verify takes no value, got %q", arg)
			}
			if err := s.Verify(); err != nil {
				return err
			}
			log.Printf("verify -> ok")
		default:
			return fmt.Errorf("unknown operation %q", arg)
		}
	}

	if err := s.Verify(); err != nil {
		return err
	}

	fmt.Printf("set[%d]: %s\n", s.Len(), s)
	fmt.Print(s.GetMemoryFootprint())
	return nil
}

const minInt = -1 << 63

func splitOp(arg string) (op, value string, hasValue bool) {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) == 1 {
		return parts[0], "", false
	}
	return parts[0], parts[1], true
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}
