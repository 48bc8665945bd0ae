package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondmetrics/capcast/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	failFor  int32
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(ctx context.Context) error {
	n := j.runs.Add(1)
	if n <= j.failFor {
		return errors.New("boom")
	}
	return nil
}

func newTestScheduler() *Scheduler {
	s := New(logger.NewNop())
	s.retryDelay = time.Millisecond
	return s
}

func waitForHistory(t *testing.T, s *Scheduler, jobName string) JobResult {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		history, err := s.GetJobHistory(jobName)
		require.NoError(t, err)
		if latest := history.Latest(); latest != nil {
			return *latest
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never recorded a result", jobName)
	return JobResult{}
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := newTestScheduler()

	job := &fakeJob{name: "sync", schedule: "0 0 3 * * *"}
	require.NoError(t, s.AddJob(job))

	err := s.AddJob(&fakeJob{name: "sync", schedule: "0 0 4 * * *"})
	assert.ErrorContains(t, err, "already exists")
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := newTestScheduler()

	err := s.AddJob(&fakeJob{name: "sync", schedule: "not a schedule"})
	assert.ErrorContains(t, err, "failed to schedule")
}

func TestRunJobUnknownName(t *testing.T) {
	s := newTestScheduler()

	err := s.RunJob("missing")
	assert.ErrorContains(t, err, "not found")
}

func TestRunJobRecordsSuccess(t *testing.T) {
	s := newTestScheduler()

	job := &fakeJob{name: "sync", schedule: "0 0 3 * * *"}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("sync"))

	result := waitForHistory(t, s, "sync")
	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, "sync", result.JobName)
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestRunJobRetriesUntilSuccess(t *testing.T) {
	s := newTestScheduler()

	job := &fakeJob{name: "flaky", schedule: "0 0 3 * * *", failFor: 2}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("flaky"))

	result := waitForHistory(t, s, "flaky")
	assert.True(t, result.Success)
	assert.Equal(t, int32(3), job.runs.Load())
}

func TestRunJobExhaustsRetries(t *testing.T) {
	s := newTestScheduler()

	// Fails more times than the scheduler will retry.
	job := &fakeJob{name: "broken", schedule: "0 0 3 * * *", failFor: 100}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("broken"))

	result := waitForHistory(t, s, "broken")
	assert.False(t, result.Success)
	assert.Equal(t, "boom", result.Error)
	assert.Equal(t, int32(4), job.runs.Load())
}

func TestGetAllJobs(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.AddJob(&fakeJob{name: "a", schedule: "@daily"}))
	require.NoError(t, s.AddJob(&fakeJob{name: "b", schedule: "@weekly"}))

	assert.ElementsMatch(t, []string{"a", "b"}, s.GetAllJobs())
}

func TestJobHistoryCapsAtHundred(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "j", Success: i%2 == 0})
	}

	assert.Len(t, h.Results, 100)
}

func TestJobHistorySuccessRate(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.SuccessRate())

	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})
	h.AddResult(JobResult{Success: true})

	assert.Equal(t, 0.75, h.SuccessRate())
}
