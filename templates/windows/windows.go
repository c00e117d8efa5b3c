package windows

import (
	"go.uber.org/zap"

	"github.com/wippyai/bindgen/declare"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

// Package is the Java package of the generated bindings.
const Package = "org.lwjgl.system.windows"

const header = "WindowsLWJGL.h"

// Classes lists the binding classes declared by Build, in emission order.
var Classes = []string{"User32", "Gdi32", "Kernel32"}

type types struct {
	void, BOOL, BYTE, WORD, DWORD, UINT, FLOAT, short, int, LONG, ATOM *nativetype.Type

	LPDWORD, LPINT *nativetype.Type

	LRESULT, WPARAM, LPARAM                            *nativetype.Type
	HMODULE, FARPROC, HWND, HMENU, HINSTANCE, LPVOID   *nativetype.Type
	HDC, HGLRC, HGDIOBJ, PROC, WNDPROC                 *nativetype.Type
	HICON, HCURSOR, HBRUSH                             *nativetype.Type
	TCHAR, LPCTSTR, LPCSTR                             *nativetype.Type
	POINT, LPPOINT, POINTL, MSG, LPMSG                 *nativetype.Type
	POINTFLOAT, LPGLYPHMETRICSFLOAT                    *nativetype.Type
	PIXELFORMATDESCRIPTOR, LPPIXELFORMATDESCRIPTOR     *nativetype.Type
	WNDCLASSEX, LPWNDCLASSEX, LPOSVERSIONINFO, DEVMODE *nativetype.Type
	PDISPLAY_DEVICE, GOBJENUMPROC                      *nativetype.Type
}

// Build declares the Windows types, structs, callbacks and the user32,
// gdi32 and kernel32 functions used by the system bindings.
func Build(logger *zap.Logger) (*declare.Graph, error) {
	b := declare.NewBuilder(logger)
	t := declareTypes(b)
	declareFunctions(b, t)
	return b.Build()
}

func member(t *nativetype.Type, nativeName, name string) registry.Member {
	return registry.Member{Type: t, NativeName: nativeName, Name: name}
}

func text(t *nativetype.Type, nativeName, name string, size int) registry.Member {
	return registry.Member{Type: t, NativeName: nativeName, Name: name, Count: size, NullTerminated: true}
}

func declareTypes(b *declare.Builder) *types {
	t := &types{}

	t.void = b.Primitive("void", mapping.Void)
	// Not boolean because GetMessage returns -1 on error.
	t.BOOL = b.Primitive("BOOL", mapping.Int)
	t.BYTE = b.Integer("BYTE", mapping.Byte, true)
	t.WORD = b.Integer("WORD", mapping.Short, true)
	t.DWORD = b.Integer("DWORD", mapping.Int, true)
	t.UINT = b.Integer("UINT", mapping.Int, true)
	t.FLOAT = b.Primitive("FLOAT", mapping.Float)
	t.short = b.Primitive("short", mapping.Short)
	t.int = b.Primitive("int", mapping.Int)
	t.LONG = b.Primitive("LONG", mapping.Int)
	t.ATOM = b.Integer("ATOM", mapping.Short, true)

	t.LPDWORD = b.PNamed(t.DWORD, "LPDWORD")
	t.LPINT = b.PNamed(t.int, "LPINT")

	t.LRESULT = b.Opaque("LRESULT")
	t.WPARAM = b.Opaque("WPARAM")
	t.LPARAM = b.Opaque("LPARAM")

	// UNICODE is defined in WindowsLWJGL.h, so T types are UTF-16.
	t.TCHAR = b.Char("TCHAR", mapping.CharUTF16)
	t.LPCTSTR = b.CharSequence(nativetype.CharSequence{
		Name:            "LPCTSTR",
		Charset:         mapping.CharUTF16,
		IncludesPointer: true,
		NullTerminated:  true,
	})
	t.LPCSTR = b.CharSequence(nativetype.CharSequence{Name: "LPCSTR", IncludesPointer: true})

	t.HMODULE = b.Opaque("HMODULE")
	t.FARPROC = b.Opaque("FARPROC")
	t.HWND = b.Opaque("HWND")
	t.HMENU = b.Opaque("HMENU")
	t.HINSTANCE = b.Opaque("HINSTANCE")
	t.LPVOID = b.Opaque("LPVOID")
	t.HDC = b.Opaque("HDC")
	t.HGLRC = b.Opaque("HGLRC")
	t.HGDIOBJ = b.Opaque("HGDIOBJ")
	t.PROC = b.Opaque("PROC")
	t.WNDPROC = b.Opaque("WNDPROC")
	t.HICON = b.Opaque("HICON")
	t.HCURSOR = b.Opaque("HCURSOR")
	t.HBRUSH = b.Opaque("HBRUSH")

	t.POINTFLOAT = b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "POINTFLOAT",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.FLOAT, "x", ""),
			member(t.FLOAT, "y", ""),
		},
	})

	glyph := b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "GLYPHMETRICSFLOAT",
		Doc:        "Contains information about the placement and orientation of a glyph in a character cell.",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.FLOAT, "gmfBlackBoxX", "blackBoxX"),
			member(t.FLOAT, "gmfBlackBoxY", "blackBoxY"),
			member(t.POINTFLOAT, "gmfptGlyphOrigin", "glyphOrigin"),
			member(t.FLOAT, "gmfCellIncX", "cellIncX"),
			member(t.FLOAT, "gmfCellIncY", "cellIncY"),
		},
	})
	t.LPGLYPHMETRICSFLOAT = b.PNamed(glyph, "LPGLYPHMETRICSFLOAT")

	t.PIXELFORMATDESCRIPTOR = b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "PIXELFORMATDESCRIPTOR",
		Doc:        "Describes the pixel format of a drawing surface.",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.WORD, "nSize", "size"),
			member(t.WORD, "nVersion", "version"),
			member(t.DWORD, "dwFlags", "flags"),
			member(t.BYTE, "iPixelType", "pixelType"),
			member(t.BYTE, "cColorBits", "colorBits"),
			member(t.BYTE, "cRedBits", "redBits"),
			member(t.BYTE, "cRedShift", "redShift"),
			member(t.BYTE, "cGreenBits", "greenBits"),
			member(t.BYTE, "cGreenShift", "greenShift"),
			member(t.BYTE, "cBlueBits", "blueBits"),
			member(t.BYTE, "cBlueShift", "blueShift"),
			member(t.BYTE, "cAlphaBits", "alphaBits"),
			member(t.BYTE, "cAlphaShift", "alphaShift"),
			member(t.BYTE, "cAccumBits", "accumBits"),
			member(t.BYTE, "cAccumRedBits", "accumRedBits"),
			member(t.BYTE, "cAccumGreenBits", "accumGreenBits"),
			member(t.BYTE, "cAccumBlueBits", "accumBlueBits"),
			member(t.BYTE, "cAccumAlphaBits", "accumAlphaBits"),
			member(t.BYTE, "cDepthBits", "depthBits"),
			member(t.BYTE, "cStencilBits", "stencilBits"),
			member(t.BYTE, "cAuxBuffers", "auxBuffers"),
			member(t.BYTE, "iLayerType", "layerType"),
			member(t.BYTE, "bReserved", "reserved"),
			member(t.DWORD, "dwLayerMask", "layerMask"),
			member(t.DWORD, "dwVisibleMask", "visibleMask"),
			member(t.DWORD, "dwDamageMask", "damageMask"),
		},
	})
	t.LPPIXELFORMATDESCRIPTOR = b.PNamed(t.PIXELFORMATDESCRIPTOR, "LPPIXELFORMATDESCRIPTOR")

	t.WNDCLASSEX = b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "WNDCLASSEX",
		Doc:        "Contains the window class attributes that are registered by the RegisterClassEx function.",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.UINT, "cbSize", "size"),
			member(t.UINT, "style", ""),
			member(t.WNDPROC, "lpfnWndProc", "wndProc"),
			member(t.int, "cbClsExtra", "clsExtra"),
			member(t.int, "cbWndExtra", "wndExtra"),
			member(t.HINSTANCE, "hInstance", "instance"),
			member(t.HICON, "hIcon", "icon"),
			member(t.HCURSOR, "hCursor", "cursor"),
			member(t.HBRUSH, "hbrBackground", "background"),
			member(t.LPCTSTR, "lpszMenuName", "menuName"),
			member(t.LPCTSTR, "lpszClassName", "className"),
			member(t.HICON, "hIconSm", "iconSm"),
		},
	})
	t.LPWNDCLASSEX = b.PNamed(t.WNDCLASSEX, "LPWNDCLASSEX")

	osVersion := b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "OSVERSIONINFOEX",
		Doc:        "Contains operating system version information.",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.DWORD, "dwOSVersionInfoSize", "osVersionInfoSize"),
			member(t.DWORD, "dwMajorVersion", "majorVersion"),
			member(t.DWORD, "dwMinorVersion", "minorVersion"),
			member(t.DWORD, "dwBuildNumber", "buildNumber"),
			member(t.DWORD, "dwPlatformId", "platformId"),
			text(t.TCHAR, "szCSDVersion", "csdVersion", 128),
			member(t.WORD, "wServicePackMajor", "servicePackMajor"),
			member(t.WORD, "wServicePackMinor", "servicePackMinor"),
			member(t.WORD, "wSuiteMask", "suiteMask"),
			member(t.BYTE, "wProductType", "productType"),
		},
	})
	t.LPOSVERSIONINFO = b.PNamed(osVersion, "LPOSVERSIONINFO")

	t.POINT = b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "POINT",
		Doc:        "Defines the x- and y- coordinates of a point.",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.LONG, "x", ""),
			member(t.LONG, "y", ""),
		},
	})
	t.LPPOINT = b.PNamed(t.POINT, "LPPOINT")

	t.MSG = b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "MSG",
		Doc:        "Contains message information from a thread's message queue.",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.HWND, "hwnd", "window"),
			member(t.UINT, "message", ""),
			member(t.WPARAM, "wParam", ""),
			member(t.LPARAM, "lParam", ""),
			member(t.DWORD, "time", ""),
			member(t.POINT, "pt", "point"),
		},
	})
	t.LPMSG = b.PNamed(t.MSG, "LPMSG")

	t.POINTL = b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "POINTL",
		Doc:        "Contains the coordinates of a point.",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.LONG, "x", ""),
			member(t.LONG, "y", ""),
		},
	})

	t.DEVMODE = b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "DEVMODE",
		Doc:        "Contains information about the initialization and environment of a printer or a display device.",
		Imports:    []string{header},
		Members: []registry.Member{
			text(t.TCHAR, "dmDeviceName", "deviceName", 32),
			member(t.WORD, "dmSpecVersion", "specVersion"),
			member(t.WORD, "dmDriverVersion", "driverVersion"),
			member(t.WORD, "dmSize", "size"),
			member(t.WORD, "dmDriverExtra", "driverExtra"),
			member(t.DWORD, "dmFields", "fields"),
			member(t.POINTL, "dmPosition", "position"),
			member(t.WORD, "dmLogPixels", "logPixels"),
			member(t.DWORD, "dmBitsPerPel", "bitsPerPel"),
			member(t.DWORD, "dmPelsWidth", "pelsWidth"),
			member(t.DWORD, "dmPelsHeight", "pelsHeight"),
			member(t.DWORD, "dmDisplayFlags", "displayFlags"),
			member(t.DWORD, "dmDisplayFrequency", "displayFrequency"),
		},
	})

	displayDevice := b.Struct(&registry.Struct{
		Package:    Package,
		NativeName: "DISPLAY_DEVICE",
		Doc:        "Receives information about the display device specified by the devNum parameter of the EnumDisplayDevices function.",
		Imports:    []string{header},
		Members: []registry.Member{
			member(t.DWORD, "cb", ""),
			text(t.TCHAR, "DeviceName", "", 32),
			text(t.TCHAR, "DeviceString", "", 128),
			member(t.DWORD, "StateFlags", ""),
			text(t.TCHAR, "DeviceID", "", 128),
			text(t.TCHAR, "DeviceKey", "", 128),
		},
	})
	t.PDISPLAY_DEVICE = b.PNamed(displayDevice, "PDISPLAY_DEVICE")

	t.GOBJENUMPROC = b.Callback(&registry.Callback{
		Package:    Package,
		Name:       "GOBJENUMPROC",
		ClassName:  "EnumObjectsProc",
		Doc:        "An application-defined callback function used with the EnumObjects function. It is used to process the object data.",
		Convention: "CALLBACK",
		Return:     t.int,
		Params: []registry.Param{
			{Type: t.LPVOID, Name: "logObject", Doc: "a pointer to a LOGPEN or LOGBRUSH structure describing the attributes of the object"},
			{Type: t.LPARAM, Name: "data", Doc: "a pointer to the application-defined data passed by the EnumObjects function"},
		},
	})

	return t
}

func p(t *nativetype.Type, name string) registry.Param {
	return registry.Param{Type: t, Name: name}
}

func declareFunctions(b *declare.Builder, t *types) {
	const user32, gdi32, kernel32 = "User32", "Gdi32", "Kernel32"

	b.Func(user32, "IsWindow", t.BOOL, p(t.HWND, "hWnd"))
	b.Func(user32, "GetDesktopWindow", t.HWND)
	b.Func(user32, "GetCursorPos", t.BOOL, p(t.LPPOINT, "point"))
	b.Func(user32, "SetCursorPos", t.BOOL, p(t.int, "X"), p(t.int, "Y"))
	b.Func(user32, "GetMessage", t.BOOL,
		p(t.LPMSG, "msg"), p(t.HWND, "hWnd"), p(t.UINT, "msgFilterMin"), p(t.UINT, "msgFilterMax"))
	b.Func(user32, "RegisterClassEx", t.ATOM, p(t.LPWNDCLASSEX, "wndClass"))
	b.Func(user32, "DefWindowProc", t.LRESULT,
		p(t.HWND, "hWnd"), p(t.UINT, "msg"), p(t.WPARAM, "wParam"), p(t.LPARAM, "lParam"))
	b.Func(user32, "GetWindowThreadProcessId", t.DWORD, p(t.HWND, "hWnd"), p(t.LPDWORD, "processId"))
	b.Func(user32, "EnumDisplayDevices", t.BOOL,
		p(t.LPCTSTR, "device"), p(t.DWORD, "devNum"), p(t.PDISPLAY_DEVICE, "displayDevice"), p(t.DWORD, "flags"))
	b.Func(user32, "PostQuitMessage", t.void, p(t.int, "exitCode"))
	b.Func(user32, "GetSystemMetrics", t.int, p(t.int, "index"))

	b.Func(gdi32, "ChoosePixelFormat", t.int, p(t.HDC, "hdc"), p(t.LPPIXELFORMATDESCRIPTOR, "pixelFormatDescriptor"))
	b.Func(gdi32, "GetPixelFormat", t.int, p(t.HDC, "hdc"))
	b.Func(gdi32, "EnumObjects", t.int,
		p(t.HDC, "hdc"), p(t.int, "objectType"), p(t.GOBJENUMPROC, "objectFunc"), p(t.LPARAM, "param"))
	b.Func(gdi32, "GetCharWidth32", t.BOOL,
		p(t.HDC, "hdc"), p(t.UINT, "first"), p(t.UINT, "last"), p(t.LPINT, "buffer"))
	b.Func(gdi32, "wglCreateContext", t.HGLRC, p(t.HDC, "hdc"))
	b.Func(gdi32, "wglUseFontOutlines", t.BOOL,
		p(t.HDC, "hdc"), p(t.DWORD, "first"), p(t.DWORD, "count"), p(t.DWORD, "listBase"),
		p(t.FLOAT, "deviation"), p(t.FLOAT, "extrusion"), p(t.int, "format"), p(t.LPGLYPHMETRICSFLOAT, "glyphMetrics"))

	b.Func(kernel32, "GetModuleHandle", t.HMODULE, p(t.LPCTSTR, "moduleName"))
	b.Func(kernel32, "GetProcAddress", t.FARPROC, p(t.HMODULE, "handle"), p(t.LPCSTR, "name"))
	b.Func(kernel32, "GetVersionEx", t.BOOL, p(t.LPOSVERSIONINFO, "versionInfo"))
	b.Func(kernel32, "GetLastError", t.DWORD)
}
