package mapping

// Class is a managed-side type that can occupy the intermediate or the
// user-facing slot of a mapping.
type Class uint8

const (
	ClassVoid Class = iota
	ClassBoolean
	ClassByte
	ClassChar
	ClassShort
	ClassInt
	ClassLong
	ClassFloat
	ClassDouble
	ClassByteBuffer
	ClassShortBuffer
	ClassIntBuffer
	ClassLongBuffer
	ClassFloatBuffer
	ClassDoubleBuffer
	ClassPointerBuffer
)

type classInfo struct {
	simple    string
	qualified string
	code      string
}

var classes = [...]classInfo{
	ClassVoid:          {"void", "void", "V"},
	ClassBoolean:       {"boolean", "boolean", "Z"},
	ClassByte:          {"byte", "byte", "B"},
	ClassChar:          {"char", "char", "C"},
	ClassShort:         {"short", "short", "S"},
	ClassInt:           {"int", "int", "I"},
	ClassLong:          {"long", "long", "J"},
	ClassFloat:         {"float", "float", "F"},
	ClassDouble:        {"double", "double", "D"},
	ClassByteBuffer:    {"ByteBuffer", "java.nio.ByteBuffer", ""},
	ClassShortBuffer:   {"ShortBuffer", "java.nio.ShortBuffer", ""},
	ClassIntBuffer:     {"IntBuffer", "java.nio.IntBuffer", ""},
	ClassLongBuffer:    {"LongBuffer", "java.nio.LongBuffer", ""},
	ClassFloatBuffer:   {"FloatBuffer", "java.nio.FloatBuffer", ""},
	ClassDoubleBuffer:  {"DoubleBuffer", "java.nio.DoubleBuffer", ""},
	ClassPointerBuffer: {"PointerBuffer", "org.lwjgl.PointerBuffer", ""},
}

func (c Class) valid() bool {
	return int(c) < len(classes)
}

// SimpleName returns the unqualified name, e.g. "int" or "IntBuffer".
func (c Class) SimpleName() string {
	if c.valid() {
		return classes[c].simple
	}
	return "unknown"
}

// QualifiedName returns the fully qualified name.
func (c Class) QualifiedName() string {
	if c.valid() {
		return classes[c].qualified
	}
	return "unknown"
}

// IsPrimitive reports whether c is a primitive or void.
func (c Class) IsPrimitive() bool {
	return c <= ClassDouble
}

// Code returns the JNI type signature of c: a one-letter code for
// primitives and void, L<qualified name>; otherwise.
func (c Class) Code() string {
	if c.IsPrimitive() {
		return classes[c].code
	}
	return "L" + c.QualifiedName() + ";"
}

func (c Class) String() string {
	return c.SimpleName()
}
