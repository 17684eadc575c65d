package commander

import (
	"context"
	"fmt"
	"strings"

	"featureselect/internal/jobs"
	"featureselect/internal/search"
)

func (c *Commander) searchBackground(ctx context.Context, name string) {
	if c.dataset == nil {
		c.println(c.red("No data loaded. Use 'load <file>' first"))
		return
	}

	strategy, err := search.ParseStrategy(name)
	if err != nil {
		c.printf("%s %v\n", c.red("✗"), err)
		return
	}

	job := c.jobManager.CreateJob(string(strategy),
		fmt.Sprintf("%s on %s", strategy.Title(), c.dataset.Source))
	c.jobManager.Start(ctx, job, jobs.SearchRun(strategy, c.dataset, c.dataset.NumFeatures(),
		search.WithLogger(c.logger)))
	c.printf("Job submitted: %s\n", c.cyan(job.ID))
}

func (c *Commander) listAllJobs() {
	jobList := c.jobManager.ListJobs()
	if len(jobList) == 0 {
		c.println("No jobs found")
		return
	}

	c.println(c.cyan("Background Jobs:"))
	c.println(strings.Repeat("-", 80))
	c.printf("%-26s %-10s %-10s %-10s %s\n", "Job ID", "Type", "Status", "Progress", "Description")
	c.println(strings.Repeat("-", 80))

	for _, job := range jobList {
		statusColor := c.yellow
		switch job.GetStatus() {
		case jobs.JobCompleted:
			statusColor = c.green
		case jobs.JobFailed:
			statusColor = c.red
		case jobs.JobRunning:
			statusColor = c.cyan
		}

		progress := fmt.Sprintf("%.0f%%", job.GetProgress()*100)
		c.printf("%-26s %-10s %-10s %-10s %s\n",
			job.ID, job.Type, statusColor(string(job.GetStatus())), progress, job.Description)
	}
}

func (c *Commander) showJobStatus(jobID string) {
	job, exists := c.jobManager.GetJob(jobID)
	if !exists {
		c.printf("%s Job not found: %s\n", c.red("✗"), jobID)
		return
	}

	c.printf("\n%s\n", c.cyan("Job Details:"))
	c.printf("ID:          %s\n", job.ID)
	c.printf("Type:        %s\n", job.Type)
	c.printf("Status:      %s\n", job.GetStatus())
	c.printf("Progress:    %.0f%%\n", job.GetProgress()*100)
	c.printf("Start Time:  %s\n", job.StartTime.Format("15:04:05"))

	select {
	case <-job.Done():
		if job.EndTime != nil {
			c.printf("End Time:    %s\n", job.EndTime.Format("15:04:05"))
			c.printf("Duration:    %s\n", job.EndTime.Sub(job.StartTime))
		}
	default:
	}

	if err := job.GetError(); err != nil {
		c.printf("Error:       %s\n", c.red(err.Error()))
	}
	if res := job.GetResult(); res != nil {
		c.printf("Result:      %s at %.1f%% (%d evaluations)\n",
			res.Selected, res.Accuracy, res.Evaluations())
	}
}

func (c *Commander) cancelJob(jobID string) {
	err := c.jobManager.CancelJob(jobID)
	if err != nil {
		c.printf("%s %v\n", c.red("✗"), err)
	} else {
		c.printf("%s Job cancelled: %s\n", c.green("✓"), jobID)
	}
}

func (c *Commander) showJobLogs(jobID string) {
	job, exists := c.jobManager.GetJob(jobID)
	if !exists {
		c.printf("%s Job not found: %s\n", c.red("✗"), jobID)
		return
	}

	logs := job.GetLogs()
	if len(logs) == 0 {
		c.println("No logs available")
		return
	}

	c.printf("\n%s\n", c.cyan(fmt.Sprintf("Logs for job %s:", jobID)))
	for _, line := range logs {
		c.println(line)
	}
}
