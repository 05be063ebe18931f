package msg

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/unicode"
)

// MAPI property IDs (MS-OXMSG stream naming: "__substg1.0_" + property ID
// + property type, both hex). Type 001F is UTF-16LE, 001E is 8-bit, 0102
// is binary.
const (
	propSubject          = "0037"
	propSenderName       = "0C1A"
	propSenderEmail      = "0C1F"
	propBody             = "1000"
	propRecipDisplayName = "3001"
	propRecipEmail       = "3003"
	propRecipSMTP        = "39FE"
	propAttachDataBin    = "3701"
	propAttachShortName  = "3704"
	propAttachLongName   = "3707"
	propAttachMIMETag    = "370E"
)

// Property tags carried in the fixed-width __properties_version1.0 stream
// rather than in their own substream.
const (
	tagClientSubmitTime    = 0x00390040
	tagMessageDeliveryTime = 0x0E060040
)

const (
	substgPrefix      = "__substg1.0_"
	attachStorage     = "__attach_version1.0_"
	recipStorage      = "__recip_version1.0_"
	propertiesStream  = "__properties_version1.0"
	messagePropHeader = 32 // fixed header before the 16-byte entries
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ReadFile parses an Outlook .msg file (an OLE2 compound file) into a
// plain message record. Attachments and recipients keep the order implied
// by their numbered storage names.
func ReadFile(path string) (*Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open msg file: %w", err)
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, fmt.Errorf("parse msg container %s: %w", filepath.Base(path), err)
	}

	top := map[string][]byte{}
	attachments := map[string]map[string][]byte{}
	recipients := map[string]map[string][]byte{}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Size == 0 {
			continue
		}
		isSubstg := strings.HasPrefix(entry.Name, substgPrefix)
		if !isSubstg && entry.Name != propertiesStream {
			continue
		}

		switch {
		case len(entry.Path) == 0:
			top[entry.Name] = readStream(entry)
		case strings.HasPrefix(entry.Path[0], attachStorage) && isSubstg:
			storeStream(attachments, entry.Path[0], entry)
		case strings.HasPrefix(entry.Path[0], recipStorage) && isSubstg:
			storeStream(recipients, entry.Path[0], entry)
		}
	}

	m := &Message{
		FileName: filepath.Base(path),
		Sender:   firstProp(top, propSenderName, propSenderEmail),
		Subject:  stringProp(top, propSubject),
		Body:     stringProp(top, propBody),
		Receiver: joinReceivers(collectReceivers(recipients)),
		Date:     submitTime(top[propertiesStream]),
	}

	for _, name := range sortedKeys(attachments) {
		streams := attachments[name]
		att := Attachment{
			LongFilename: firstProp(streams, propAttachLongName, propAttachShortName),
			MIMEType:     stringProp(streams, propAttachMIMETag),
			Data:         streams[substgPrefix+propAttachDataBin+"0102"],
		}
		m.Attachments = append(m.Attachments, att)
	}

	return m, nil
}

func readStream(entry *mscfb.File) []byte {
	buf := make([]byte, entry.Size)
	n, _ := io.ReadFull(entry, buf)
	return buf[:n]
}

func storeStream(into map[string]map[string][]byte, storage string, entry *mscfb.File) {
	if into[storage] == nil {
		into[storage] = map[string][]byte{}
	}
	into[storage][entry.Name] = readStream(entry)
}

// stringProp resolves a string property, preferring the UTF-16 variant
// over the 8-bit one.
func stringProp(streams map[string][]byte, id string) string {
	if data, ok := streams[substgPrefix+id+"001F"]; ok {
		return decodeUTF16(data)
	}
	if data, ok := streams[substgPrefix+id+"001E"]; ok {
		return strings.TrimRight(string(data), "\x00")
	}
	return ""
}

// firstProp returns the first property ID that resolves to a non-empty value.
func firstProp(streams map[string][]byte, ids ...string) string {
	for _, id := range ids {
		if v := stringProp(streams, id); v != "" {
			return v
		}
	}
	return ""
}

func decodeUTF16(data []byte) string {
	out, err := utf16le.NewDecoder().Bytes(data)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(out), "\x00")
}

func collectReceivers(recipients map[string]map[string][]byte) []string {
	var addrs []string
	for _, name := range sortedKeys(recipients) {
		streams := recipients[name]
		if addr := firstProp(streams, propRecipSMTP, propRecipEmail, propRecipDisplayName); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// joinReceivers renders the recipient list the way the downstream record
// system expects: addresses concatenated with all separator spacing
// removed.
func joinReceivers(addrs []string) string {
	joined := strings.Join(addrs, "; ")
	joined = strings.ReplaceAll(joined, "; ", "")
	return strings.ReplaceAll(joined, " ", "")
}

// submitTime pulls the client submit time (or delivery time as fallback)
// out of the fixed-width properties stream. Entries are 16 bytes: a
// 4-byte property tag, 4 flag bytes and an 8-byte value; FILETIME values
// count 100ns ticks since 1601-01-01.
func submitTime(props []byte) string {
	if len(props) < messagePropHeader {
		return ""
	}
	var submit, delivery uint64
	for off := messagePropHeader; off+16 <= len(props); off += 16 {
		tag := binary.LittleEndian.Uint32(props[off:])
		switch tag {
		case tagClientSubmitTime:
			submit = binary.LittleEndian.Uint64(props[off+8:])
		case tagMessageDeliveryTime:
			delivery = binary.LittleEndian.Uint64(props[off+8:])
		}
	}
	ft := submit
	if ft == 0 {
		ft = delivery
	}
	if ft == 0 {
		return ""
	}
	return filetimeString(ft)
}

func filetimeString(ft uint64) string {
	const epochDelta = 11644473600 // seconds between 1601-01-01 and 1970-01-01
	secs := int64(ft/10_000_000) - epochDelta
	nanos := int64(ft%10_000_000) * 100
	return time.Unix(secs, nanos).UTC().Format(time.RFC1123Z)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
