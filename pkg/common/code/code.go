package code

import (
	"errors"
	"fmt"
)

// ErrCode is a numeric error kind. The bare value is itself an error, and
// every *Err derived from it matches it under errors.Is.
type ErrCode int

const (
	Success ErrCode = 0
)

// infrastructure
const (
	UnDefineErr ErrCode = iota + 1000
	ParamErr
	RecordNotFound
	QueryRecordErr
	CreateDataErr
	UpdateDataErr
	ReadFileErr
	WriteFileErr
	UnmarshalErr
	MarshalErr
	LockErr
	RPCHttpErr
	RPCHttpCodeErr
	NotifyActionAlreadyRegistryErr
	NotifySendMsgErr
)

// reagent catalog and calculation
const (
	ReagentNotFound ErrCode = iota + 2000
	ValidationErr
	UnknownCategory
	InvalidQuantity
	ReagentExist
	CompoundNotFound
)

var codeMsg = map[ErrCode]string{
	Success:                        "success",
	UnDefineErr:                    "undefined error",
	ParamErr:                       "parameter error",
	RecordNotFound:                 "record not found",
	QueryRecordErr:                 "query record error",
	CreateDataErr:                  "create data error",
	UpdateDataErr:                  "update data error",
	ReadFileErr:                    "read file error",
	WriteFileErr:                   "write file error",
	UnmarshalErr:                   "unmarshal error",
	MarshalErr:                     "marshal error",
	LockErr:                        "acquire lock error",
	RPCHttpErr:                     "rpc http request error",
	RPCHttpCodeErr:                 "rpc http status error",
	NotifyActionAlreadyRegistryErr: "notify action already registered",
	NotifySendMsgErr:               "notify send message error",
	ReagentNotFound:                "reagent not found",
	ValidationErr:                  "reagent validation error",
	UnknownCategory:                "unknown reagent category",
	InvalidQuantity:                "invalid quantity",
	ReagentExist:                   "reagent already exists",
	CompoundNotFound:               "compound not found",
}

func (c ErrCode) Int() int { return int(c) }

func (c ErrCode) String() string {
	if msg, ok := codeMsg[c]; ok {
		return msg
	}
	return fmt.Sprintf("error code %d", int(c))
}

func (c ErrCode) Error() string { return c.String() }

func (c ErrCode) WithErr(err error) *Err {
	return &Err{Code: c, Err: err}
}

func (c ErrCode) WithMsg(msg string) *Err {
	return &Err{Code: c, Msg: msg}
}

func (c ErrCode) WithMsgf(format string, args ...any) *Err {
	return &Err{Code: c, Msg: fmt.Sprintf(format, args...)}
}

// WithField names the input field that caused the error.
func (c ErrCode) WithField(field, msg string) *Err {
	return &Err{Code: c, Field: field, Msg: msg}
}

type Err struct {
	Code  ErrCode
	Field string
	Msg   string
	Err   error
}

func (e *Err) Error() string {
	msg := e.Code.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Err) Unwrap() error { return e.Err }

func (e *Err) Is(target error) bool {
	switch t := target.(type) {
	case ErrCode:
		return e.Code == t
	case *Err:
		return e.Code == t.Code
	}
	return false
}

func (e *Err) WithErr(err error) *Err {
	n := *e
	n.Err = err
	return &n
}

// Of returns the code carried by err, UnDefineErr for foreign errors and
// Success for nil.
func Of(err error) ErrCode {
	if err == nil {
		return Success
	}
	var e *Err
	if errors.As(err, &e) {
		return e.Code
	}
	var c ErrCode
	if errors.As(err, &c) {
		return c
	}
	return UnDefineErr
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var e *Err
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// Message is the user facing text of err.
func Message(err error) string {
	var e *Err
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return Of(err).String()
}
