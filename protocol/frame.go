package protocol

import "bytes"

// AppendLine appends payload framed as "<payload>*<CRC16 hex>\n" to dst.
// The payload must not contain a newline.
func AppendLine(dst, payload []byte) []byte {
	dst = append(dst, payload...)
	dst = append(dst, LineSeparator)
	dst = appendHex16(dst, CRC16(payload))
	return append(dst, '\n')
}

// EncodeLine frames payload into a new slice
func EncodeLine(payload []byte) []byte {
	return AppendLine(make([]byte, 0, len(payload)+LineTrailer), payload)
}

// DecodeLine verifies a received frame and returns its payload.
// A trailing "\n" or "\r\n" is tolerated. The returned slice aliases line.
func DecodeLine(line []byte) ([]byte, error) {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) > LineMax {
		return nil, ErrLineTooLong
	}
	sep := bytes.LastIndexByte(line, LineSeparator)
	if sep < 0 {
		return nil, ErrMalformed
	}
	want, ok := parseHex16(line[sep+1:])
	if !ok {
		return nil, ErrMalformed
	}
	payload := line[:sep]
	if CRC16(payload) != want {
		return nil, ErrBadChecksum
	}
	return payload, nil
}
