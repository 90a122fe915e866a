package sign

import "errors"

// ErrUnknownSign is returned for an ID that does not name a sign on the board.
var ErrUnknownSign = errors.New("sign: unknown sign")
