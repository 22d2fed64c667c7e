package models

// The structs in this package mirror the DOMjudge tables and joined
// query results that the exam tools touch. The schema is owned by the
// judging system: column tags must match it exactly and nothing here
// is ever auto-migrated.

type Role struct {
	ID   int64  `gorm:"column:roleid;primaryKey;autoIncrement"`
	Name string `gorm:"column:role"`
}

func (Role) TableName() string { return "role" }

type TeamCategory struct {
	ID   int64  `gorm:"column:categoryid;primaryKey;autoIncrement"`
	Name string `gorm:"column:name"`
}

func (TeamCategory) TableName() string { return "team_category" }

type Contest struct {
	ID        int64  `gorm:"column:cid;primaryKey;autoIncrement"`
	Shortname string `gorm:"column:shortname"`
}

func (Contest) TableName() string { return "contest" }

type Problem struct {
	ID   int64  `gorm:"column:probid;primaryKey;autoIncrement"`
	Name string `gorm:"column:name"`
}

func (Problem) TableName() string { return "problem" }

// User mirrors the DOMjudge account row. TeamID is nil until the
// account has been assigned to a team. Password holds the bcrypt hash,
// never the plaintext.
type User struct {
	ID       int64  `gorm:"column:userid;primaryKey;autoIncrement"`
	Username string `gorm:"column:username"`
	Name     string `gorm:"column:name"`
	Email    string `gorm:"column:email"`
	Password string `gorm:"column:password"`
	TeamID   *int64 `gorm:"column:teamid"`
}

func (User) TableName() string { return "user" }

type UserRole struct {
	UserID int64 `gorm:"column:userid;primaryKey"`
	RoleID int64 `gorm:"column:roleid;primaryKey"`
}

func (UserRole) TableName() string { return "userrole" }

type Team struct {
	ID          int64  `gorm:"column:teamid;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name"`
	DisplayName string `gorm:"column:display_name"`
	CategoryID  int64  `gorm:"column:categoryid"`
}

func (Team) TableName() string { return "team" }

type ContestTeam struct {
	ContestID int64 `gorm:"column:cid;primaryKey"`
	TeamID    int64 `gorm:"column:teamid;primaryKey"`
}

func (ContestTeam) TableName() string { return "contestteam" }

// Submission is the joined result of submission x submission_file x
// judging for one valid, judged submission. SubmitTime keeps the
// schema's decimal epoch representation.
type Submission struct {
	ID         int64   `gorm:"column:submitid"`
	SubmitTime float64 `gorm:"column:submittime"`
	SourceCode []byte  `gorm:"column:sourcecode"`
	Result     string  `gorm:"column:result"`
}

// TestCaseResult is the joined result of judging_run x testcase for
// one submission. Result is nil when the run was never evaluated.
type TestCaseResult struct {
	ID          int64   `gorm:"column:testcaseid"`
	Rank        int64   `gorm:"column:ranknumber"`
	Description []byte  `gorm:"column:description"`
	Result      *string `gorm:"column:runresult"`
}

// VerdictCorrect is the DOMjudge verdict string for an accepted
// submission or a passing test case run.
const VerdictCorrect = "correct"
