package web

import (
	"fmt"
	"testing"

	"github.com/robertkrimen/otto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDOM is just enough of a document for ListController to paginate and
// sort a single-column table.
const fakeDOM = `
function el() {
    return { hidden: false, disabled: false, textContent: '', addEventListener: function () {} };
}

function makeRoot(values, pageSize) {
    var parts = {
        'prev': el(), 'next': el(),
        'items-shown': el(), 'total-items': el(), 'current-page': el(), 'total-pages': el()
    };
    var rows = values.map(function (v) {
        var row = el();
        row.cells = [{ textContent: v }];
        return row;
    });
    var body = {
        rows: rows,
        addEventListener: function () {},
        appendChild: function () {}
    };
    var table = {
        tBodies: [body],
        dataset: { pageSize: String(pageSize) },
        querySelectorAll: function () { return []; }
    };
    var prefix = '[data-role="';
    return {
        parts: parts,
        querySelector: function (sel) {
            if (sel === '[data-list-table]') return table;
            if (sel.indexOf(prefix) === 0) return parts[sel.slice(prefix.length, -2)] || null;
            return null;
        }
    };
}

function rowsOf(n) {
    var out = [];
    for (var i = 0; i < n; i++) out.push('row' + i);
    return out;
}

function visible(c) {
    return c.rows.filter(function (r) { return !r.hidden; }).length;
}

function order(c) {
    return c.rows.map(function (r) { return r.cells[0].textContent; }).join(',');
}

var header = { querySelector: function () { return null; } };
`

func newListVM(t *testing.T) *otto.Otto {
	t.Helper()
	src, err := StaticFS.ReadFile("static/list.js")
	require.NoError(t, err)

	vm := otto.New()
	_, err = vm.Run(string(src))
	require.NoError(t, err, "list.js must load outside a browser")
	_, err = vm.Run(fakeDOM)
	require.NoError(t, err)
	return vm
}

func run(t *testing.T, vm *otto.Otto, script string) otto.Value {
	t.Helper()
	v, err := vm.Run(script)
	require.NoError(t, err, script)
	return v
}

func runInt(t *testing.T, vm *otto.Otto, script string) int64 {
	t.Helper()
	n, err := run(t, vm, script).ToInteger()
	require.NoError(t, err)
	return n
}

func runBool(t *testing.T, vm *otto.Otto, script string) bool {
	t.Helper()
	b, err := run(t, vm, script).ToBoolean()
	require.NoError(t, err)
	return b
}

func runString(t *testing.T, vm *otto.Otto, script string) string {
	t.Helper()
	s, err := run(t, vm, script).ToString()
	require.NoError(t, err)
	return s
}

func TestListControllerPagination(t *testing.T) {
	vm := newListVM(t)

	for _, n := range []int{0, 1, 9, 10, 11, 25, 30} {
		t.Run(fmt.Sprintf("%d rows", n), func(t *testing.T) {
			run(t, vm, fmt.Sprintf("var c = new ListController(makeRoot(rowsOf(%d), 10));", n))

			pages := int64(1)
			if n > 10 {
				pages = int64((n + 9) / 10)
			}
			require.Equal(t, pages, runInt(t, vm, "c.pages()"))

			firstPage := n
			if firstPage > 10 {
				firstPage = 10
			}
			assert.Equal(t, int64(firstPage), runInt(t, vm, "visible(c)"))
			assert.True(t, runBool(t, vm, "c.root.parts.prev.disabled"), "prev is disabled on the first page")
			assert.Equal(t, pages == 1, runBool(t, vm, "c.root.parts.next.disabled"))

			run(t, vm, "c.goTo(c.pages());")
			lastPage := n % 10
			if n > 0 && lastPage == 0 {
				lastPage = 10
			}
			assert.Equal(t, int64(lastPage), runInt(t, vm, "visible(c)"), "last page row count")
			assert.Equal(t, int64(n), runInt(t, vm, "c.root.parts['items-shown'].textContent"))
			assert.True(t, runBool(t, vm, "c.root.parts.next.disabled"), "next is disabled on the last page")
			assert.Equal(t, pages == 1, runBool(t, vm, "c.root.parts.prev.disabled"))

			if pages >= 3 {
				run(t, vm, "c.goTo(2);")
				assert.False(t, runBool(t, vm, "c.root.parts.prev.disabled"))
				assert.False(t, runBool(t, vm, "c.root.parts.next.disabled"))
				assert.Equal(t, int64(10), runInt(t, vm, "visible(c)"))
			}

			before := runInt(t, vm, "c.currentPage")
			run(t, vm, "c.goTo(0); c.goTo(c.pages() + 1);")
			assert.Equal(t, before, runInt(t, vm, "c.currentPage"), "out of range pages are ignored")
		})
	}
}

func TestListControllerSorting(t *testing.T) {
	vm := newListVM(t)

	run(t, vm, "var c = new ListController(makeRoot(['b', ' a', 'c'], 10));")

	run(t, vm, "c.sortBy(0, header);")
	assert.Equal(t, "asc", runString(t, vm, "c.sortDirection"))
	assert.Equal(t, " a,b,c", runString(t, vm, "order(c)"))

	run(t, vm, "c.sortBy(0, header);")
	assert.Equal(t, "desc", runString(t, vm, "c.sortDirection"), "a second click reverses")
	assert.Equal(t, "c,b, a", runString(t, vm, "order(c)"))

	run(t, vm, "c.sortBy(0, header);")
	assert.Equal(t, " a,b,c", runString(t, vm, "order(c)"))
}

func TestListControllerSortReturnsToFirstPage(t *testing.T) {
	vm := newListVM(t)

	run(t, vm, "var c = new ListController(makeRoot(rowsOf(25), 10)); c.goTo(3);")
	require.Equal(t, int64(3), runInt(t, vm, "c.currentPage"))

	run(t, vm, "c.sortBy(0, header);")
	assert.Equal(t, int64(1), runInt(t, vm, "c.currentPage"))
	assert.Equal(t, int64(10), runInt(t, vm, "visible(c)"))
	assert.True(t, runBool(t, vm, "c.root.parts.prev.disabled"))
}

func TestListHelpers(t *testing.T) {
	vm := newListVM(t)

	assert.Equal(t, int64(1), runInt(t, vm, "ListController.helpers.totalPages(0, 10)"))
	assert.Equal(t, int64(3), runInt(t, vm, "ListController.helpers.totalPages(21, 10)"))
	assert.Equal(t, "asc", runString(t, vm, "ListController.helpers.nextDirection(1, 2, 'asc')"),
		"a new column starts ascending")
	assert.Equal(t, "/Category/Delete/7", runString(t, vm, "ListController.helpers.deleteUrl('/Category/Delete/{id}', 7)"))
}
