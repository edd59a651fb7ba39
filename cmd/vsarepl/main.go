// Command vsarepl is an interactive console for poking at the vsa domain
// from the terminal: build strided intervals, combine them, and print the
// result. 'q' to quit.
//
// commands:
//
//	si <w> <stride> <lower> <upper>:
//	  register a strided interval under the next free slot.
//	top <w>:
//	  register Top_w.
//	add|sub|mul|and|or|xor <i> <j>:
//	  combine two registered slots, printing and registering the result.
//	p [i]:
//	  print a slot, or every slot.
//	bits <i>:
//	  print the known-bits mask for a slot (1/0 pinned, ? unknown).
//	q:
//	  quit.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/jyane/vsa"
)

type console struct {
	slots  []vsa.StridedInterval
	policy vsa.Policy
}

func newConsole() *console {
	return &console{policy: vsa.DefaultPolicy}
}

func (c *console) register(si vsa.StridedInterval) int {
	c.slots = append(c.slots, si)
	return len(c.slots) - 1
}

func (c *console) printCommand(args []string) {
	if len(args) < 2 {
		for i, s := range c.slots {
			fmt.Printf("[%d] %s\n", i, s)
		}
		return
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil || idx < 0 || idx >= len(c.slots) {
		fmt.Printf("no such slot %q\n", args[1])
		return
	}
	fmt.Printf("[%d] %s\n", idx, c.slots[idx])
}

func (c *console) siCommand(args []string) error {
	if len(args) != 5 {
		return fmt.Errorf("usage: si <w> <stride> <lower> <upper>")
	}
	w, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		return err
	}
	stride, err := strconv.ParseUint(args[2], 0, 64)
	if err != nil {
		return err
	}
	lower, err := strconv.ParseUint(args[3], 0, 64)
	if err != nil {
		return err
	}
	upper, err := strconv.ParseUint(args[4], 0, 64)
	if err != nil {
		return err
	}
	si, err := vsa.New(uint8(w), stride, lower, upper)
	if err != nil {
		return err
	}
	idx := c.register(si)
	fmt.Printf("[%d] %s\n", idx, si)
	return nil
}

func (c *console) topCommand(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: top <w>")
	}
	w, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		return err
	}
	si := vsa.Top(uint8(w))
	idx := c.register(si)
	fmt.Printf("[%d] %s\n", idx, si)
	return nil
}

func (c *console) binaryCommand(op string, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: %s <i> <j>", op)
	}
	i, err := strconv.Atoi(args[1])
	if err != nil || i < 0 || i >= len(c.slots) {
		return fmt.Errorf("no such slot %q", args[1])
	}
	j, err := strconv.Atoi(args[2])
	if err != nil || j < 0 || j >= len(c.slots) {
		return fmt.Errorf("no such slot %q", args[2])
	}
	a, b := c.slots[i], c.slots[j]
	var result vsa.StridedInterval
	switch op {
	case "add":
		result, err = a.Add(b)
	case "sub":
		result, err = a.Sub(b)
	case "mul":
		result, err = a.Mul(b)
	case "and":
		result, err = a.And(b, c.policy)
	case "or":
		result, err = a.Or(b, c.policy)
	case "xor":
		result, err = a.Xor(b, c.policy)
	default:
		return fmt.Errorf("unknown op %q", op)
	}
	if err != nil {
		return err
	}
	idx := c.register(result)
	fmt.Printf("[%d] %s\n", idx, result)
	return nil
}

func (c *console) bitsCommand(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: bits <i>")
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil || idx < 0 || idx >= len(c.slots) {
		return fmt.Errorf("no such slot %q", args[1])
	}
	fmt.Printf("[%d] %s\n", idx, c.slots[idx].KnownBitsString())
	return nil
}

func (c *console) quitCommand() {
	fmt.Println("Quitting.")
	os.Exit(0)
}

// step reads and executes one command line, matching the teacher's
// DebugConsole.Step shape: read a line, split on whitespace, dispatch.
func (c *console) step(in *bufio.Reader) error {
	fmt.Print(">> ")
	line, err := in.ReadString('\n')
	if err != nil {
		return err
	}
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "si":
		return c.siCommand(args)
	case "top":
		return c.topCommand(args)
	case "add", "sub", "mul", "and", "or", "xor":
		return c.binaryCommand(args[0], args)
	case "p", "print":
		c.printCommand(args)
	case "bits":
		return c.bitsCommand(args)
	case "q", "quit":
		c.quitCommand()
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func main() {
	fmt.Println("vsarepl, 'q' to quit")
	c := newConsole()
	in := bufio.NewReader(os.Stdin)
	for {
		if err := c.step(in); err != nil {
			glog.Infof("vsarepl: %v", err)
		}
	}
}
