package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type EmployeeID string

func NewEmployeeID(id string) EmployeeID { return EmployeeID(id) }
func (e EmployeeID) String() string      { return string(e) }
func (e EmployeeID) IsEmpty() bool       { return string(e) == "" }
