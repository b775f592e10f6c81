package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lancejpollard/bplustree/backend/btree"
)

var seqCommand = cli.Command{
	Action: runSeq,
	Name:   "seq",
	Usage:  "drives an in-memory Sequence[string] through a sequence of operations",
	Flags: []cli.Flag{
		&capacityFlag,
	},
	ArgsUsage: "[insert:OFFSET=V|remove:OFFSET|set:OFFSET=V|get:OFFSET|verify ...]",
}

func runSeq(ctx *cli.Context) error {
	capacity := ctx.Int(capacityFlag.Name)
	s := btree.NewSequence[string](capacity)

	for _, arg := range ctx.Args().Slice() {
		op, value, hasValue := splitOp(arg)
		switch op {
		case "insert":
			offset, val, err := splitOffsetValue(value)
			if err != nil {
				return err
			}
			s.InsertItemAt(offset, val)
			log.Printf("insert %d=%q -> len=%d", offset, val, s.Len())
		case "remove":
			offset, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("not an integer offset: %q", value)
			}
			v := s.RemoveItemAt(offset)
			log.Printf("remove %d -> %q, len=%d", offset, v, s.Len())
		case "set":
			offset, val, err := splitOffsetValue(value)
			if err != nil {
				return err
			}
			s.SetItemAt(offset, val)
			log.Printf("set %d=%q", offset, val)
		case "get":
			offset, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("not an integer offset: %q", value)
			}
			log.Printf("get %d -> %q", offset, s.GetItemAt(offset))
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

	fmt.Printf("seq[%d]: %s\n", s.Len(), s)
	fmt.Print(s.GetMemoryFootprint())
	return nil
}

func splitOffsetValue(s string) (int, string, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("expected offset=value, got %q", s)
	}
	offset, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("not an integer offset: %q", parts[0])
	}
	return offset, parts[1], nil
}
