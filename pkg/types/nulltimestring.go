package types

// NullTimeString nullable вариант TimeString для сканирования из БД
// (scheduled_time равен NULL у котировок)
type NullTimeString struct {
	TimeString TimeString
	Valid      bool
}

// Scan реализует sql.Scanner
func (n *NullTimeString) Scan(src interface{}) error {
	if src == nil {
		n.TimeString = ""
		n.Valid = false
		return nil
	}
	if err := n.TimeString.Scan(src); err != nil {
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}
