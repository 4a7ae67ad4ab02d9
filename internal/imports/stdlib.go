package imports

// stdlibModules is the closed set of Python standard library top-level
// names the classifier recognizes. Anything not here and not relative is
// treated as third-party.
var stdlibModules = map[string]bool{
	"abc": true, "argparse": true, "array": true, "ast": true,
	"asyncio": true, "atexit": true, "base64": true, "bisect": true,
	"builtins": true, "bz2": true, "calendar": true, "cmath": true,
	"codecs": true, "collections": true, "concurrent": true,
	"configparser": true, "contextlib": true, "contextvars": true,
	"copy": true, "copyreg": true, "csv": true, "ctypes": true,
	"dataclasses": true, "datetime": true, "decimal": true,
	"difflib": true, "dis": true, "email": true, "enum": true,
	"errno": true, "faulthandler": true, "fcntl": true, "filecmp": true,
	"fnmatch": true, "fractions": true, "functools": true, "gc": true,
	"getopt": true, "getpass": true, "gettext": true, "glob": true,
	"graphlib": true, "gzip": true, "hashlib": true, "heapq": true,
	"hmac": true, "html": true, "http": true, "importlib": true,
	"inspect": true, "io": true, "ipaddress": true, "itertools": true,
	"json": true, "keyword": true, "linecache": true, "locale": true,
	"logging": true, "lzma": true, "marshal": true, "math": true,
	"mimetypes": true, "mmap": true, "multiprocessing": true,
	"numbers": true, "operator": true, "os": true, "pathlib": true,
	"pickle": true, "pkgutil": true, "platform": true, "plistlib": true,
	"pprint": true, "profile": true, "pstats": true, "pty": true,
	"py_compile": true, "pydoc": true, "queue": true, "random": true,
	"re": true, "reprlib": true, "resource": true, "runpy": true,
	"sched": true, "secrets": true, "select": true, "selectors": true,
	"shelve": true, "shlex": true, "shutil": true, "signal": true,
	"site": true, "socket": true, "socketserver": true, "sqlite3": true,
	"ssl": true, "stat": true, "statistics": true, "string": true,
	"stringprep": true, "struct": true, "subprocess": true,
	"symtable": true, "sys": true, "sysconfig": true, "tarfile": true,
	"tempfile": true, "termios": true, "textwrap": true,
	"threading": true, "time": true, "timeit": true, "tkinter": true,
	"token": true, "tokenize": true, "tomllib": true, "trace": true,
	"traceback": true, "tracemalloc": true, "types": true,
	"typing": true, "unicodedata": true, "unittest": true,
	"urllib": true, "uuid": true, "venv": true, "warnings": true,
	"wave": true, "weakref": true, "webbrowser": true, "wsgiref": true,
	"xml": true, "xmlrpc": true, "zipapp": true, "zipfile": true,
	"zipimport": true, "zlib": true, "zoneinfo": true,
}
