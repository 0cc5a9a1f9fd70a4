package domain

// Party is a directory entry for either a job seeker or an employer.
type Party struct {
	ID          string
	DisplayName string
}

// Job is the subset of a job posting the messaging core needs.
type Job struct {
	ID         string `gorm:"column:id;primaryKey"`
	EmployerID string `gorm:"column:employer_id"`
	Title      string `gorm:"column:title"`
}

// TableName keep the catalog table names aligned with the job board schema
func (Job) TableName() string { return "jobs" }

// Application links one job seeker's submission to one job posting.
// The employer is resolved transitively through the job.
type Application struct {
	ID          string `gorm:"column:id;primaryKey"`
	JobID       string `gorm:"column:job_id"`
	JobSeekerID string `gorm:"column:job_seeker_id"`
	EmployerID  string `gorm:"-"`
}

// TableName see Job.TableName
func (Application) TableName() string { return "applications" }
