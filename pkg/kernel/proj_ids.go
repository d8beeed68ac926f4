package kernel

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }

type LeadID string

func NewLeadID(id string) LeadID { return LeadID(id) }
func (l LeadID) String() string  { return string(l) }
func (l LeadID) IsEmpty() bool   { return string(l) == "" }

// FileKey is the handle of a blob inside the configured file system.
type FileKey string

func (k FileKey) String() string { return string(k) }
func (k FileKey) IsEmpty() bool  { return string(k) == "" }
