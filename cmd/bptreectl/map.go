package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lancejpollard/bplustree/backend/btree"
)

var mapCommand = cli.Command{
	Action: runMap,
	Name:   "map",
	Usage:  "drives an in-memory OrderedMap[int,string] through a sequence of operations",
	Flags: []cli.Flag{
		&capacityFlag,
	},
	ArgsUsage: "[set:N=V|remove:N|get:N|verify ...]",
}

func runMap(ctx *cli.Context) error {
	capacity := ctx.Int(capacityFlag.Name)
	m := btree.NewOrderedMap[int, string](capacity, btree.OrderedComparator[int]{})

	for _, arg := range ctx.Args().Slice() {
		op, value, hasValue := splitOp(arg)
		switch op {
		case "set":
			key, val, err := splitKeyValue(value)
			if err != nil {
				return err
			}
			m.Set(key, val)
			log.Printf("set %d=%q -> len=%d", key, val, m.Len())
		case "remove":
			n, err := parseInt(value)
			if err != nil {
				return err
			}
			removed := m.Remove(n)
			log.Printf("remove %d -> removed=%v len=%d", n, removed, m.Len())
		case "get":
			n, err := parseInt(value)
			if err != nil {
				return err
			}
			v, ok := m.Get(n)
			log.Printf("get %d -> %q, %v", n, v, ok)
		case "verify":
			if hasValue {
				return fmt.Errorf("verify takes no value, got %q", arg)
			}
			if err := m.Verify(); err != nil {
				return err
			}
			log.Printf("verify -> ok")
		default:
			return fmt.Errorf("unknown operation %q", arg)
		}
	}

	if err := m.Verify(); err != nil {
		return err
	}

	fmt.Printf("map[%d]: %s\n", m.Len(), m)
	fmt.Print(m.GetMemoryFootprint())
	return nil
}

func splitKeyValue(s string) (int, string, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("expected key=value, got %q", s)
	}
	key, err := parseInt(parts[0])
	if err != nil {
		return 0, "", err
	}
	return key, parts[1], nil
}
