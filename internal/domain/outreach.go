package domain

// EmailMessage is the payload handed to the email delivery service.
type EmailMessage struct {
	FromName  string
	FromEmail string
	To        string
	BCC       string
	Subject   string
	HTML      string
}

// SMSMessage is the payload handed to the SMS delivery service.
type SMSMessage struct {
	From string
	To   string
	Body string
}

// ValidationRecord is one row of the per-run validation audit file.
type ValidationRecord struct {
	ContactName string
	Email       string
	Valid       bool
}

// IngestStats summarizes one fetch-and-append run.
type IngestStats struct {
	Known          int
	Fetched        int
	New            int
	Appended       int
	LookupFailures int
}

// MergeStats summarizes one phone-merge run.
type MergeStats struct {
	SourceAddresses int
	Matched         int
	Unmatched       int
	TotalRows       int
}

// DispatchStats summarizes one outreach run. Counters mirror the run
// summary printed at the end.
type DispatchStats struct {
	TotalRows        int
	AlreadyContacted int
	SkippedLowRating int
	Processed        int
	EmailsValid      int
	EmailsInvalid    int
	EmailsSent       int
	EmailsFailed     int
	SMSSent          int
	SMSFailed        int
	MarkedContacted  int
}

// ResetStats summarizes one reset run.
type ResetStats struct {
	Reset     int
	AlreadyNo int
	NotFound  []string
}
