package box

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wkhere/tarantool/client"
	"github.com/wkhere/tarantool/cmd/util"
	"github.com/wkhere/tarantool/common"
)

var (
	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Checks that the server responds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := conn.Ping()
			if err != nil {
				return err
			}
			printResponse(resp, "pong")
			return nil
		},
	}

	selectCmd = &cobra.Command{
		Use:   "select [space] [key field]...",
		Short: "Reads tuples matching an index key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := parseSpace(args[0])
			if err != nil {
				return err
			}
			index, _ := cmd.Flags().GetUint32("index")
			offset, _ := cmd.Flags().GetUint32("offset")
			limit, _ := cmd.Flags().GetUint32("limit")

			key := util.ParseTuple(args[1:])
			resp, err := conn.Select(space, index, []common.Tuple{key},
				&common.SelectOptions{Offset: offset, Limit: limit})
			if err != nil {
				return err
			}
			printResponse(resp, "selected")
			return nil
		},
	}

	insertCmd = &cobra.Command{
		Use:   "insert [space] [field]...",
		Short: "Adds one tuple to a space",
		Args:  cobra.MinimumNArgs(2),
		RunE:  func(cmd *cobra.Command, args []string) error { return runMutate(cmd, args, conn.Insert) },
	}

	replaceCmd = &cobra.Command{
		Use:   "replace [space] [field]...",
		Short: "Replaces one existing tuple in a space",
		Args:  cobra.MinimumNArgs(2),
		RunE:  func(cmd *cobra.Command, args []string) error { return runMutate(cmd, args, conn.Replace) },
	}

	delCmd = &cobra.Command{
		Use:   "del [space] [key field]...",
		Short: "Deletes the tuple matching a primary key",
		Args:  cobra.MinimumNArgs(2),
		RunE:  func(cmd *cobra.Command, args []string) error { return runMutate(cmd, args, conn.Delete) },
	}

	callCmd = &cobra.Command{
		Use:   "call [proc] [arg]...",
		Short: "Calls a stored procedure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := conn.Call(args[0], util.ParseTuple(args[1:]))
			if err != nil {
				return err
			}
			printResponse(resp, "called")
			return nil
		},
	}
)

func init() {
	selectCmd.Flags().Uint32("index", 0, util.WrapString("Index to select by"))
	selectCmd.Flags().Uint32("offset", 0, util.WrapString("Number of matching tuples to skip"))
	selectCmd.Flags().Uint32("limit", 0, util.WrapString("Maximum number of tuples to return (0 for unlimited)"))

	for _, cmd := range []*cobra.Command{insertCmd, replaceCmd, delCmd} {
		cmd.Flags().Bool("return-tuple", false, util.WrapString("Return the affected tuple instead of a row count"))
	}
}

// mutateFunc is the shared shape of Insert, Replace and Delete.
type mutateFunc func(space uint32, tuple common.Tuple, opts *common.MutateOptions) (*client.Response, error)

func runMutate(cmd *cobra.Command, args []string, op mutateFunc) error {
	space, err := parseSpace(args[0])
	if err != nil {
		return err
	}
	returnTuple, _ := cmd.Flags().GetBool("return-tuple")

	resp, err := op(space, util.ParseTuple(args[1:]),
		&common.MutateOptions{ReturnTuple: returnTuple})
	if err != nil {
		return err
	}
	printResponse(resp, "ok")
	return nil
}

func parseSpace(arg string) (uint32, error) {
	space, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("space must be a number: %w", err)
	}
	return uint32(space), nil
}

// printResponse reports the outcome of one operation. In async and
// discard modes there is no result yet, only the allocated request id;
// async results are then printed as they arrive on the notification
// channel when the connection closes.
func printResponse(resp *client.Response, okText string) {
	if resp.Result == nil {
		fmt.Printf("request id=%d sent\n", resp.RequestID)
		waitNotification(resp.RequestID)
		return
	}
	printResult(resp.Result, okText)
}

func printResult(res *common.Result, okText string) {
	if len(res.Tuples) == 0 {
		fmt.Printf("%s, count=%d\n", okText, res.Count)
		return
	}
	for _, tuple := range res.Tuples {
		fmt.Println(tuple)
	}
}

// waitNotification blocks until the async notification for id arrives.
// In discard mode there is nothing to wait for.
func waitNotification(id uint32) {
	ch := conn.Notifications()
	if ch == nil {
		return
	}
	for n := range ch {
		if n.RequestID != id {
			continue
		}
		if n.Err != nil {
			fmt.Printf("request id=%d failed: %v\n", id, n.Err)
		} else {
			printResult(n.Result, fmt.Sprintf("request id=%d resolved", id))
		}
		return
	}
}
