package wordpress

import (
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// buildMethodCall serializes an XML-RPC methodCall document.
func buildMethodCall(method string, params ...any) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	call := doc.CreateElement("methodCall")
	call.CreateElement("methodName").SetText(method)

	ps := call.CreateElement("params")
	for _, p := range params {
		value := ps.CreateElement("param").CreateElement("value")
		if err := encodeValue(value, p); err != nil {
			return nil, err
		}
	}

	return doc.WriteToBytes()
}

func encodeValue(value *etree.Element, v any) error {
	switch t := v.(type) {
	case string:
		value.CreateElement("string").SetText(t)
	case int:
		value.CreateElement("int").SetText(strconv.Itoa(t))
	case int64:
		value.CreateElement("int").SetText(strconv.FormatInt(t, 10))
	case bool:
		b := "0"
		if t {
			b = "1"
		}
		value.CreateElement("boolean").SetText(b)
	case map[string]string:
		st := value.CreateElement("struct")
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			member := st.CreateElement("member")
			member.CreateElement("name").SetText(k)
			member.CreateElement("value").CreateElement("string").SetText(t[k])
		}
	default:
		return postrewriter.Errorf(postrewriter.EINVALID, "unsupported XML-RPC parameter type %T", v)
	}
	return nil
}

// parseMethodResponse returns the response's value element, or an
// EUNAVAILABLE error carrying the fault string when the server
// returned a fault.
func parseMethodResponse(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, postrewriter.Errorf(postrewriter.EINTERNAL, "invalid XML-RPC response: %v", err)
	}

	if fault := doc.FindElement("//fault"); fault != nil {
		msg := "unknown fault"
		for _, member := range fault.FindElements(".//member") {
			name := member.FindElement("name")
			value := member.FindElement("value")
			if name != nil && value != nil && name.Text() == "faultString" {
				msg = valueText(value)
			}
		}
		return nil, postrewriter.Errorf(postrewriter.EUNAVAILABLE, "XML-RPC fault: %s", msg)
	}

	value := doc.FindElement("/methodResponse/params/param/value")
	if value == nil {
		return nil, postrewriter.Errorf(postrewriter.EINTERNAL, "malformed XML-RPC response")
	}
	return value, nil
}

// decodeStruct flattens a struct value into member name to text.
func decodeStruct(value *etree.Element) map[string]string {
	members := map[string]string{}
	for _, member := range value.FindElements("struct/member") {
		name := member.FindElement("name")
		v := member.FindElement("value")
		if name != nil && v != nil {
			members[name.Text()] = valueText(v)
		}
	}
	return members
}

// decodeBool interprets a value element as an XML-RPC boolean.
func decodeBool(value *etree.Element) bool {
	t := valueText(value)
	return t == "1" || strings.EqualFold(t, "true")
}

// valueText returns the text of a value element, unwrapping the typed
// child element when present.
func valueText(value *etree.Element) string {
	if children := value.ChildElements(); len(children) > 0 {
		return strings.TrimSpace(children[0].Text())
	}
	return strings.TrimSpace(value.Text())
}
