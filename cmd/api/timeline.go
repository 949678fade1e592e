package main

import (
	"encoding/json"

	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/spf13/cobra"
)

var (
	timelineAssignment string
	timelineFrom       string
	timelineTo         string
	timelinePage       int
	timelineLimit      int
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the attendance timeline of an assignment as JSON",
	Args:  cobra.NoArgs,
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineAssignment, "assignment", "", "Assignment ID")
	timelineCmd.Flags().StringVar(&timelineFrom, "from", "", "First date, YYYY-MM-DD (default: assignment start)")
	timelineCmd.Flags().StringVar(&timelineTo, "to", "", "Last date, YYYY-MM-DD (default: today or assignment end)")
	timelineCmd.Flags().IntVar(&timelinePage, "page", 1, "Page number")
	timelineCmd.Flags().IntVar(&timelineLimit, "limit", 100, "Records per page")
	_ = timelineCmd.MarkFlagRequired("assignment")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	req := attendance.TimelineRequest{
		AssignmentID: timelineAssignment,
		Page:         timelinePage,
		Limit:        timelineLimit,
	}
	if timelineFrom != "" {
		req.StartDate = &timelineFrom
	}
	if timelineTo != "" {
		req.EndDate = &timelineTo
	}

	result, err := a.attendanceService.GetTimeline(cmd.Context(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
